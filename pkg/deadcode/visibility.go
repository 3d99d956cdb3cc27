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

// Visibility is the closed set an item's visibility is projected to.
// JSON values match the cache file schema in spec.md §6 exactly.
type Visibility string

const (
	VisPrivate  Visibility = "Private"
	VisPublic   Visibility = "Public"
	VisPubCrate Visibility = "PubCrate"
	VisPubSuper Visibility = "PubSuper"
	VisPubIn    Visibility = "PubIn" // path-restricted, e.g. pub(in crate::foo)
)

// ReportString renders the fixed report convention of spec.md §4.3:
// "pub", "pub(crate)", "pub(super)", "pub(restricted)", "private".
func (v Visibility) ReportString() string {
	switch v {
	case VisPublic:
		return "pub"
	case VisPubCrate:
		return "pub(crate)"
	case VisPubSuper:
		return "pub(super)"
	case VisPubIn:
		return "pub(restricted)"
	default:
		return "private"
	}
}

// visibilityFromKeywords classifies the raw visibility_modifier text
// Tree-sitter gives us for a Rust item: "", "pub", "pub(crate)",
// "pub(super)", "pub(in ...)".
func visibilityFromKeywords(raw string) Visibility {
	switch {
	case raw == "":
		return VisPrivate
	case raw == "pub":
		return VisPublic
	case raw == "pub(crate)":
		return VisPubCrate
	case raw == "pub(super)":
		return VisPubSuper
	case len(raw) > 4 && raw[:4] == "pub(":
		return VisPubIn
	default:
		return VisPrivate
	}
}
