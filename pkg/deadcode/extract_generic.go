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

// visitStructItem records nothing of its own (structs are not a tracked
// axis) beyond the generic parameters it declares, then recurses into its
// field list so field types register as generic usage.
func (w *walker) visitStructItem(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		w.visitChildren(n)
		return
	}
	name := w.text(nameNode)
	w.extractGenericParams(n, name, ParentStruct)
	w.pushItem(name)
	if body := n.ChildByFieldName("body"); body != nil {
		w.visit(body)
	}
	w.popItem()
}

// extractGenericParams parses an item's `<...>` type-parameter list and its
// optional where-clause, text-first rather than field-first: the grammar's
// exact constrained/unconstrained parameter node shapes vary enough across
// tree-sitter-rust versions that splitting the rendered text on top-level
// commas is the more robust approach (the same approach parseUseTree takes
// for import trees).
func (w *walker) extractGenericParams(n *sitter.Node, parentName string, kind ParentKind) {
	tp := n.ChildByFieldName("type_parameters")
	if tp != nil {
		raw := strings.TrimSpace(w.text(tp))
		raw = strings.TrimPrefix(raw, "<")
		raw = strings.TrimSuffix(raw, ">")
		for _, part := range splitTopLevelComma(raw) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			rec := parseGenericParam(part, parentName, kind, w.path)
			if rec.Name != "" {
				w.facts.Generics = append(w.facts.Generics, rec)
			}
		}
	}

	wc := childByType(n, "where_clause")
	if wc == nil {
		return
	}
	raw := strings.TrimSpace(w.text(wc))
	raw = strings.TrimPrefix(raw, "where")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "{")
	for _, part := range splitTopLevelComma(raw) {
		name, bounds := splitBoundClause(part)
		if name == "" {
			continue
		}
		for i := range w.facts.Generics {
			g := &w.facts.Generics[i]
			if g.ParentItem == parentName && g.ParentKind == kind && g.Name == name {
				g.InlineBounds = append(g.InlineBounds, bounds...)
			}
		}
	}
}

func parseGenericParam(part, parentName string, kind ParentKind, file string) GenericRecord {
	switch {
	case strings.HasPrefix(part, "'"):
		name, _ := splitBoundClause(part)
		return GenericRecord{Name: name, Kind: GenericLifetime, ParentItem: parentName, ParentKind: kind, File: file}
	case strings.HasPrefix(part, "const "):
		rest := strings.TrimSpace(strings.TrimPrefix(part, "const "))
		name, _ := splitBoundClause(rest)
		name = firstToken(name)
		return GenericRecord{Name: name, Kind: GenericConst, ParentItem: parentName, ParentKind: kind, File: file}
	default:
		name, bounds := splitBoundClause(part)
		name = stripDefault(name)
		return GenericRecord{Name: name, Kind: GenericType, ParentItem: parentName, ParentKind: kind, File: file, InlineBounds: bounds}
	}
}

// splitBoundClause splits "Name: Bound1 + Bound2" into ("Name", [Bound1,
// Bound2]); a clause with no bounds returns the name and a nil slice.
func splitBoundClause(s string) (string, []string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return stripDefault(s), nil
	}
	name := strings.TrimSpace(s[:idx])
	boundStr := s[idx+1:]
	var bounds []string
	for _, b := range strings.Split(boundStr, "+") {
		b = strings.TrimSpace(stripDefault(b))
		if b != "" {
			bounds = append(bounds, b)
		}
	}
	return name, bounds
}

func stripDefault(s string) string {
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// visitTypeIdentifierUsage credits every generic scope currently on the
// item stack with having used this type name: a type referenced inside a
// method body might satisfy either the method's own generics or its
// enclosing impl's, and without full type inference crediting both is the
// conservative choice.
func (w *walker) visitTypeIdentifierUsage(n *sitter.Node) {
	name := w.text(n)
	if name == "" {
		return
	}
	for _, item := range w.itemStack {
		bucket := w.facts.Usage.GenericUsedTypes[item]
		if bucket == nil {
			bucket = make(map[string]struct{})
			w.facts.Usage.GenericUsedTypes[item] = bucket
		}
		bucket[name] = struct{}{}
	}
}

func (w *walker) visitLifetimeUsage(n *sitter.Node) {
	name := w.text(n)
	if name == "" || name == "'" {
		return
	}
	for _, item := range w.itemStack {
		bucket := w.facts.Usage.GenericUsedLifetimes[item]
		if bucket == nil {
			bucket = make(map[string]struct{})
			w.facts.Usage.GenericUsedLifetimes[item] = bucket
		}
		bucket[name] = struct{}{}
	}
}
