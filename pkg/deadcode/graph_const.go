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

// BuildConstGraph builds the constant axis's graph: one node per const or
// static, keyed by its bare name (usage is detected by a SCREAMING_SNAKE
// naming heuristic with no path context, so finer keys would never match).
// A constant is a root if it's pub, or if its name shows up anywhere in the
// crate's const-usage heuristic scan.
func BuildConstGraph(files []*FileFacts, usage *UsageTables) (*Graph, []string) {
	g := NewGraph()
	rootSet := make(map[string]struct{})

	for _, f := range files {
		for _, c := range f.Consts {
			g.AddNode(c.Name)
			if c.Visibility == VisPublic {
				rootSet[c.Name] = struct{}{}
			}
		}
	}
	for name := range usage.ConstNames {
		if _, ok := g.Nodes[name]; ok {
			rootSet[name] = struct{}{}
		}
	}

	roots := make([]string, 0, len(rootSet))
	for r := range rootSet {
		roots = append(roots, r)
	}
	return g, roots
}
