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

// visitAttributeItem watches for a #[doc(hidden)] / #![doc(hidden)]
// attribute immediately preceding the next item or file-level.
func (w *walker) visitAttributeItem(n *sitter.Node) {
	text := w.text(n)
	if strings.Contains(text, "doc(hidden)") {
		w.pendingDocHidden = true
		if w.facts.Module == nil {
			w.facts.Module = &ModuleRecord{Path: w.path}
		}
		if n.Type() == "inner_attribute_item" {
			// #![doc(hidden)] at file top applies to the file's own module.
			w.facts.Module.DocHidden = true
		}
	}
	if strings.Contains(text, "test]") || strings.Contains(text, "test(") {
		w.pendingTest = true
	}
	if strings.Contains(text, "no_mangle") {
		w.pendingNoMangle = true
	}
	if strings.Contains(text, "macro_export") {
		w.pendingMacroExport = true
	}
}

// visitModItem handles both `mod foo;` (external declaration) and
// `mod foo { ... }` (inline module with its own body).
func (w *walker) visitModItem(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		w.visitChildren(n)
		return
	}
	name := w.text(nameNode)

	if w.facts.Module == nil {
		w.facts.Module = &ModuleRecord{Path: w.path, Visibility: VisPrivate}
	}
	w.facts.Module.Refs = appendUnique(w.facts.Module.Refs, name)
	if w.facts.Module.DeclaredVisibility == nil {
		w.facts.Module.DeclaredVisibility = make(map[string]Visibility)
	}
	w.facts.Module.DeclaredVisibility[name] = w.visibilityOf(n)

	docHidden := w.pendingDocHidden
	w.pendingDocHidden = false
	_ = docHidden // external mod's own doc-hidden flag belongs to its own file's facts

	body := n.ChildByFieldName("body")
	if body != nil {
		// Inline module: descend with the module name pushed onto the stack.
		// Its declarations (functions, types, etc.) get this module's name
		// as a path segment, per the Parent-path discipline.
		w.stack.enterModule(name)
		w.visitChildren(body)
		w.stack.leaveModule()
	}
}

// visitUseDeclaration extracts root segments of the import path(s) into
// the module's reference set, per spec.md §4.3.1.
func (w *walker) visitUseDeclaration(n *sitter.Node) {
	argNode := n.ChildByFieldName("argument")
	if argNode == nil {
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			t := c.Type()
			if t != "use" && t != ";" && t != "visibility_modifier" {
				argNode = c
				break
			}
		}
	}
	if argNode == nil {
		return
	}

	if w.facts.Module == nil {
		w.facts.Module = &ModuleRecord{Path: w.path, Visibility: VisPrivate}
	}

	trees := parseUseTree(w.text(argNode), nil)
	for _, t := range trees {
		root := useRootSegment(t)
		if root == "" {
			continue
		}
		w.facts.Module.Refs = appendUnique(w.facts.Module.Refs, root)
		if isPubVisibility(w.visibilityOf(n)) {
			w.facts.Module.ReExports = appendUnique(w.facts.Module.ReExports, root)
		}
		if t.Alias != "" && !t.isGlob {
			if w.facts.Imports == nil {
				w.facts.Imports = make(map[string]string)
			}
			target := root
			segs := t.segments
			if len(segs) > 1 && segs[len(segs)-1] == "self" {
				segs = segs[:len(segs)-1]
			}
			if len(segs) > 0 && segs[0] == "crate" {
				segs = segs[1:]
			}
			if len(segs) > 0 && !isRelativeKeyword(segs[0]) {
				target = strings.Join(segs, "::")
			}
			w.facts.Imports[t.Alias] = target
		}
	}
}

func isPubVisibility(v Visibility) bool { return v != VisPrivate }

// useTree is one leaf of a parsed `use` path expression.
type useTree struct {
	segments []string
	isGlob   bool
	Alias    string // non-empty for a `use ... as Alias` clause
}

// parseUseTree parses a `use` argument's source text into its leaf paths.
// It operates on raw text rather than AST fields because use-tree grammar
// nests braces and aliases in ways that are far simpler to split textually
// than to re-derive from a field-name walk.
func parseUseTree(s string, prefix []string) []useTree {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Strip a trailing "as alias" at the top level; the alias never
	// affects which module is referenced (spec.md §4.3.1), but the resolver
	// needs it to rewrite later qualified calls through this alias.
	alias := ""
	if idx := topLevelIndex(s, " as "); idx >= 0 {
		alias = strings.TrimSpace(s[idx+len(" as "):])
		s = strings.TrimSpace(s[:idx])
	}
	if alias != "" {
		leaves := parseUseTree(s, prefix)
		for i := range leaves {
			leaves[i].Alias = alias
		}
		return leaves
	}

	if idx := topLevelIndex(s, "::{"); idx >= 0 {
		head := strings.TrimSuffix(strings.TrimSpace(s[:idx]), "::")
		newPrefix := append(append([]string(nil), prefix...), splitPathSegments(head)...)
		inner := s[idx+3:]
		inner = strings.TrimSuffix(strings.TrimSpace(inner), "}")
		var out []useTree
		for _, part := range splitTopLevelComma(inner) {
			out = append(out, parseUseTree(part, newPrefix)...)
		}
		return out
	}

	if strings.HasSuffix(s, "::*") {
		head := strings.TrimSuffix(s, "::*")
		segs := append(append([]string(nil), prefix...), splitPathSegments(head)...)
		return []useTree{{segments: segs, isGlob: true}}
	}

	if s == "{}" {
		return nil
	}

	segs := append(append([]string(nil), prefix...), splitPathSegments(s)...)
	return []useTree{{segments: segs}}
}

func splitPathSegments(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "::")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitTopLevelComma(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func topLevelIndex(s, sub string) int {
	depth := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 && strings.HasPrefix(s[i:], sub) {
			return i
		}
	}
	return -1
}

// useRootSegment implements the "Use-path root segment" rule: glob imports
// contribute "<last-named-segment>::*"; everything else contributes the
// first segment that isn't self/super/crate, with a trailing lone "self"
// (foo::{self, bar}) referring to the prefix itself.
func useRootSegment(t useTree) string {
	segs := append([]string(nil), t.segments...)
	if len(segs) == 0 {
		return ""
	}
	if len(segs) > 1 && segs[len(segs)-1] == "self" {
		segs = segs[:len(segs)-1]
	}
	if t.isGlob {
		if len(segs) == 0 {
			return ""
		}
		return segs[len(segs)-1] + "::*"
	}

	i := 0
	if isRelativeKeyword(segs[0]) {
		i = 1
	}
	for i < len(segs) {
		if !isRelativeKeyword(segs[i]) {
			return segs[i]
		}
		i++
	}
	return ""
}

func isRelativeKeyword(s string) bool {
	return s == "self" || s == "super" || s == "crate"
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
