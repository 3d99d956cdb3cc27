// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package deadcode

// BuildTraitGraph builds the trait axis's graph: one node per declared
// trait and one per its required/default method ("Trait::Method"), with a
// containment edge from the trait to each of its methods. A trait is a
// root if it is pub (an external crate may implement or call it) or if
// something in this crate implements it — either signal means the
// contract is in use, which is enough to count its methods as alive too;
// call-graph reachability still separately judges whether a default
// method's own body makes it alive on top of that.
func BuildTraitGraph(files []*FileFacts) (*Graph, []string) {
	g := NewGraph()
	implemented := make(map[string]struct{})
	pubTraits := make(map[string]struct{})

	for _, f := range files {
		for _, t := range f.Traits {
			g.AddNode(t.Name)
			if t.Visibility == VisPublic {
				pubTraits[t.Name] = struct{}{}
			}
		}
		for _, tm := range f.TraitMethods {
			key := tm.Trait + "::" + tm.Method
			g.AddNode(key)
			g.AddEdge(tm.Trait, key)
		}
		for _, tim := range f.TraitImplMethods {
			implemented[tim.Trait] = struct{}{}
		}
	}

	var roots []string
	for name := range g.Nodes {
		if _, ok := pubTraits[name]; ok {
			roots = append(roots, name)
			continue
		}
		if _, ok := implemented[name]; ok {
			roots = append(roots, name)
		}
	}
	return g, roots
}
