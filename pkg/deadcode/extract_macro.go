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

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// visitMacroDefinition records a `macro_rules!` declaration. Exported
// status comes from a preceding #[macro_export] attribute, since
// macro_rules has no pub keyword of its own.
func (w *walker) visitMacroDefinition(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = childByType(n, "identifier")
	}
	if nameNode == nil {
		return
	}
	exported := w.pendingMacroExport
	w.pendingMacroExport = false
	w.facts.Macros = append(w.facts.Macros, MacroRecord{
		Name:       w.text(nameNode),
		Exported:   exported,
		File:       w.path,
		ModulePath: strings.Join(w.stack.modulePath(), "::"),
	})
}

// visitMacroInvocation records usage of a macro by its unqualified name;
// `crate::foo!()` and `bar::foo!()` both register as usage of "foo" since
// macro invocation is never qualified by a full type path the way a
// function call can be.
func (w *walker) visitMacroInvocation(n *sitter.Node) {
	macroNode := n.ChildByFieldName("macro")
	if macroNode == nil {
		macroNode = childByType(n, "identifier")
	}
	if macroNode == nil {
		macroNode = childByType(n, "scoped_identifier")
	}
	if macroNode == nil {
		return
	}
	name := w.text(macroNode)
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		name = name[idx+2:]
	}
	if name == "" {
		return
	}
	w.facts.Usage.MacroNames[name] = struct{}{}
}
