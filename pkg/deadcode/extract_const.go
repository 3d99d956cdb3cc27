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

// visitConstItem records a const or static declaration. An associated
// constant declared inside an impl/trait body picks up the enclosing type
// from the path stack; a free constant leaves EnclosingTy empty.
func (w *walker) visitConstItem(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	kind := ConstConst
	if n.Type() == "static_item" {
		kind = ConstStatic
	}
	w.facts.Consts = append(w.facts.Consts, ConstRecord{
		Name:        w.text(nameNode),
		Kind:        kind,
		Mutable:     childByType(n, "mutable_specifier") != nil,
		Visibility:  w.visibilityOf(n),
		File:        w.path,
		ModulePath:  strings.Join(w.stack.modulePath(), "::"),
		EnclosingTy: w.stack.currentType(),
	})
}

// visitIdentifierUsage is a heuristic catch-all for the two axes that have
// no dedicated syntax of their own to mark usage: constants (spotted by
// SCREAMING_SNAKE_CASE naming convention) and enum variants reached through
// a qualified path (Type::Variant, or a bare Variant already in scope via a
// glob import).
func (w *walker) visitIdentifierUsage(n *sitter.Node) {
	switch n.Type() {
	case "identifier":
		name := w.text(n)
		if isScreamingSnakeCase(name) {
			w.facts.Usage.ConstNames[name] = struct{}{}
		}
		if isUpperCamelCase(name) {
			w.facts.Usage.VariantNames[name] = struct{}{}
		}
	case "scoped_identifier":
		full := w.text(n)
		idx := strings.LastIndex(full, "::")
		if idx < 0 {
			return
		}
		last := full[idx+2:]
		if isScreamingSnakeCase(last) {
			w.facts.Usage.ConstNames[last] = struct{}{}
		}
		if isUpperCamelCase(last) {
			w.facts.Usage.VariantNames[last] = struct{}{}
			w.facts.Usage.VariantFullPaths[full] = struct{}{}
		}
	}
}

func isScreamingSnakeCase(s string) bool {
	if s == "" {
		return false
	}
	hasUpper := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r == '_' || (r >= '0' && r <= '9'):
			// allowed
		default:
			return false
		}
	}
	return hasUpper
}

func isUpperCamelCase(s string) bool {
	if s == "" {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z' && !isScreamingSnakeCase(s)
}
