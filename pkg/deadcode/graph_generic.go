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

// BuildGenericGraph builds the generic-parameter axis's graph. There are no
// multi-hop edges here — a generic parameter is alive iff it was observed
// as a referenced type or lifetime somewhere inside its own declaring item,
// which the walker already recorded bucketed by that item's name in
// Usage.GenericUsedTypes / Usage.GenericUsedLifetimes.
func BuildGenericGraph(files []*FileFacts, usage *UsageTables) (*Graph, []string) {
	g := NewGraph()
	var roots []string

	for _, f := range files {
		for _, rec := range f.Generics {
			key := rec.ParentItem + "::" + rec.Name
			g.AddNode(key)

			var used bool
			if rec.Kind == GenericLifetime {
				_, used = usage.GenericUsedLifetimes[rec.ParentItem][rec.Name]
			} else {
				_, used = usage.GenericUsedTypes[rec.ParentItem][rec.Name]
			}
			if used {
				roots = append(roots, key)
			}
		}
	}
	return g, roots
}
