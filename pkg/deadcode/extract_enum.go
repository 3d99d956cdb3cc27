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
	sitter "github.com/smacker/go-tree-sitter"
)

// visitEnumItem records one EnumVariantRecord per declared variant, then
// scans each variant's payload (tuple/struct fields, discriminant
// expressions) for generic usage — but deliberately skips re-visiting the
// variant's own name node, which would otherwise register the variant as
// having "used" itself and mask every genuinely dead variant.
func (w *walker) visitEnumItem(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		w.visitChildren(n)
		return
	}
	name := w.text(nameNode)
	vis := w.visibilityOf(n)
	w.extractGenericParams(n, name, ParentEnum)

	w.pushItem(name)
	body := n.ChildByFieldName("body")
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			variant := body.Child(i)
			if variant.Type() != "enum_variant" {
				w.visit(variant)
				continue
			}
			vnameNode := variant.ChildByFieldName("name")
			if vnameNode == nil {
				continue
			}
			vname := w.text(vnameNode)
			w.facts.Variants = append(w.facts.Variants, EnumVariantRecord{
				EnumName:       name,
				VariantName:    vname,
				FullName:       name + "::" + vname,
				File:           w.path,
				EnumVisibility: vis,
			})
			for j := 0; j < int(variant.ChildCount()); j++ {
				c := variant.Child(j)
				if c == vnameNode {
					continue
				}
				w.visit(c)
			}
		}
	}
	w.popItem()
}
