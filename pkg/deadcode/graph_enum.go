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

// BuildEnumGraph builds the enum-variant axis's graph: one node per
// "Enum::Variant", keyed fully qualified since variant construction usually
// is. A variant is a root if its enum is pub, if its qualified name was
// seen in a pattern or constructor, or if its bare name was (the enum was
// glob-imported or the variant brought into scope directly).
func BuildEnumGraph(files []*FileFacts, usage *UsageTables) (*Graph, []string) {
	g := NewGraph()
	rootSet := make(map[string]struct{})

	// A match arm destructuring a variant is itself a use of that variant;
	// fold those into the usage table before judging any variant's fate, so
	// a pattern appearing in a file visited earlier still counts.
	for _, f := range files {
		for _, arm := range f.MatchArms {
			if arm.VariantName != "" {
				usage.VariantNames[arm.VariantName] = struct{}{}
			}
		}
	}

	for _, f := range files {
		for _, v := range f.Variants {
			g.AddNode(v.FullName)
			switch {
			case v.EnumVisibility == VisPublic:
				rootSet[v.FullName] = struct{}{}
			default:
				_, byPath := usage.VariantFullPaths[v.FullName]
				_, byName := usage.VariantNames[v.VariantName]
				if byPath || byName {
					rootSet[v.FullName] = struct{}{}
				}
			}
		}
	}

	roots := make([]string, 0, len(rootSet))
	for r := range rootSet {
		roots = append(roots, r)
	}
	return g, roots
}
