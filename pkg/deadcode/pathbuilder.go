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

// pathStack tracks enclosing module and type segments while an extractor
// walks one file's syntax tree. It exposes the current path as a read-only
// slice and joins on demand, rather than stashing pre-joined strings, per
// the "Parent-path tracking" design note.
type pathStack struct {
	modules []string
	types   []string
}

func (p *pathStack) enterModule(name string) { p.modules = append(p.modules, name) }
func (p *pathStack) leaveModule() {
	if len(p.modules) > 0 {
		p.modules = p.modules[:len(p.modules)-1]
	}
}

func (p *pathStack) pushType(name string) { p.types = append(p.types, name) }
func (p *pathStack) popType() {
	if len(p.types) > 0 {
		p.types = p.types[:len(p.types)-1]
	}
}

// modulePath returns the current module stack as a read-only slice.
func (p *pathStack) modulePath() []string { return p.modules }

// currentType returns the innermost enclosing type, or "" outside any impl.
func (p *pathStack) currentType() string {
	if len(p.types) == 0 {
		return ""
	}
	return p.types[len(p.types)-1]
}

// qualify joins the current module stack, current type, and name.
func (p *pathStack) qualify(name string) string {
	return JoinPath(p.modulePath(), p.currentType(), name)
}
