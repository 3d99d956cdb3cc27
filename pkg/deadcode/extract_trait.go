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

// visitTraitItem records each method a trait declares — both required
// (function_signature_item, no body) and default (function_item, has body) —
// and, for default methods, also feeds them into the function axis since
// they carry real call sites.
func (w *walker) visitTraitItem(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		w.visitChildren(n)
		return
	}
	name := w.text(nameNode)
	body := n.ChildByFieldName("body")

	w.facts.Traits = append(w.facts.Traits, TraitRecord{
		Name:       name,
		Visibility: w.visibilityOf(n),
		File:       w.path,
	})

	w.extractGenericParams(n, name, ParentTrait)
	w.stack.pushType(name)
	w.pushItem(name)
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			c := body.Child(i)
			switch c.Type() {
			case "function_signature_item":
				methodName := childText(w, c, "name")
				if methodName != "" {
					w.facts.TraitMethods = append(w.facts.TraitMethods, TraitMethod{
						Trait:      name,
						Method:     methodName,
						IsRequired: true,
						File:       w.path,
					})
				}
			case "function_item":
				methodName := childText(w, c, "name")
				if methodName != "" {
					w.facts.TraitMethods = append(w.facts.TraitMethods, TraitMethod{
						Trait:      name,
						Method:     methodName,
						IsRequired: false,
						File:       w.path,
					})
				}
				w.visitFunctionItem(c, "")
			default:
				w.visit(c)
			}
		}
	}
	w.popItem()
	w.stack.popType()
}

// visitImplItem handles both `impl Trait for Type` and inherent `impl Type`
// blocks, recording each method into the appropriate axis table and also
// into the function axis (impl methods have bodies and make real calls).
func (w *walker) visitImplItem(n *sitter.Node) {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		w.visitChildren(n)
		return
	}
	typeName := cleanTypeName(w.text(typeNode))
	traitNode := n.ChildByFieldName("trait")
	body := n.ChildByFieldName("body")

	w.extractGenericParams(n, typeName, ParentImpl)
	w.stack.pushType(typeName)
	w.pushItem(typeName)
	w.visit(typeNode)
	if traitNode != nil {
		w.visit(traitNode)
	}
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			c := body.Child(i)
			if c.Type() != "function_item" {
				w.visit(c)
				continue
			}
			methodName := childText(w, c, "name")
			if methodName != "" {
				if traitNode != nil {
					w.facts.TraitImplMethods = append(w.facts.TraitImplMethods, TraitImplMethod{
						Trait:  cleanTypeName(w.text(traitNode)),
						Type:   typeName,
						Method: methodName,
						File:   w.path,
					})
				} else {
					w.facts.InherentMethods = append(w.facts.InherentMethods, InherentImplMethod{
						Type:       typeName,
						Method:     methodName,
						IsStatic:   !hasSelfParam(c),
						Visibility: w.visibilityOf(c),
						File:       w.path,
					})
				}
			}
			w.visitFunctionItem(c, "")
		}
	}
	w.popItem()
	w.stack.popType()
}

func childText(w *walker, n *sitter.Node, field string) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return w.text(c)
}

// cleanTypeName strips reference/mut/dyn prefixes and any generic argument
// list, reducing "&mut dyn Foo<T>" or "Bar<'a, T>" down to the bare name.
func cleanTypeName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "&")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "mut ")
	s = strings.TrimPrefix(s, "dyn ")
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '<'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
