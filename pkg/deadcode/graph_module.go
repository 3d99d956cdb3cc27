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

import "strings"

// BuildModuleGraph builds the module axis's reachability graph: one node
// per file-module, an edge for every `mod` declaration and `use` root
// segment that names another declared module. roots are the crate's entry
// modules (main/lib/bin), from DetectRoots.
func BuildModuleGraph(files []*FileFacts, roots map[string]struct{}) (*Graph, []string) {
	g := NewGraph()
	for _, f := range files {
		if f.Module != nil {
			g.AddNode(f.Module.Name)
		}
	}
	for _, f := range files {
		if f.Module == nil {
			continue
		}
		for _, ref := range f.Module.Refs {
			if strings.HasSuffix(ref, "::*") {
				continue // glob hint, not a resolvable edge
			}
			if _, declared := g.Nodes[ref]; declared {
				g.AddEdge(f.Module.Name, ref)
			}
		}
	}
	rootList := make([]string, 0, len(roots))
	for r := range roots {
		rootList = append(rootList, r)
	}
	return g, rootList
}
