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

// BuildMacroGraph builds the macro axis's graph: one node per macro_rules!
// declaration, keyed by its bare name since invocation sites never carry a
// fully qualified path. A macro is a root if it's #[macro_export]ed (an
// external crate may invoke it) or if something in this crate invokes it.
func BuildMacroGraph(files []*FileFacts, usage *UsageTables) (*Graph, []string) {
	g := NewGraph()
	var roots []string
	seen := make(map[string]struct{})

	for _, f := range files {
		for _, m := range f.Macros {
			g.AddNode(m.Name)
			if _, already := seen[m.Name]; already {
				continue
			}
			if m.Exported {
				seen[m.Name] = struct{}{}
				roots = append(roots, m.Name)
			}
		}
	}
	for name := range usage.MacroNames {
		if _, ok := g.Nodes[name]; !ok {
			continue
		}
		if _, already := seen[name]; already {
			continue
		}
		seen[name] = struct{}{}
		roots = append(roots, name)
	}
	return g, roots
}
