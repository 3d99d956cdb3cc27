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

// walker holds the small mutable state one file's extraction pass needs: a
// result buffer (facts) and a stack of enclosing-scope strings (stack). It
// is a value type with enter/leave methods, not a subtype hierarchy, per
// the "Pattern visitors" design note.
type walker struct {
	content []byte
	path    string
	stack   *pathStack
	facts   *FileFacts

	pendingDocHidden    bool
	pendingTest         bool
	pendingNoMangle     bool
	pendingMacroExport  bool
	funcNodes           []funcWithNode
	matchCounter        int

	// itemStack tracks the simple name of the generic-parameter-
	// bearing item (function/struct/enum/trait/impl) currently being walked,
	// so type/lifetime identifier usage can be bucketed against it.
	itemStack []string
}

func (w *walker) pushItem(path string) { w.itemStack = append(w.itemStack, path) }
func (w *walker) popItem() {
	if len(w.itemStack) > 0 {
		w.itemStack = w.itemStack[:len(w.itemStack)-1]
	}
}

type funcWithNode struct {
	rec  FunctionRecord
	node *sitter.Node
}

// walkFile is the single entry point: it recurses over the whole tree once,
// dispatching declaration extraction per node type, then makes a second
// pass over each collected function body to extract call sites.
func (w *walker) walkFile(root *sitter.Node) {
	w.visit(root)
	for _, fn := range w.funcNodes {
		w.extractCallsIn(fn.node, fn.rec.FullPath)
	}
}

// visit recurses through the tree, dispatching to axis-specific handlers.
// Each handler decides whether to recurse into its own children (e.g.
// entering a module pushes/pops the path stack around the recursive call);
// everything else falls through to a plain recursive visit of children.
func (w *walker) visit(n *sitter.Node) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "mod_item":
		w.visitModItem(n)
		return
	case "use_declaration":
		w.visitUseDeclaration(n)
	case "attribute_item", "inner_attribute_item":
		w.visitAttributeItem(n)
	case "function_item":
		w.visitFunctionItem(n, "")
		return
	case "function_signature_item":
		// Only meaningful inside a trait body; handled by visitTraitItem.
	case "impl_item":
		w.visitImplItem(n)
		return
	case "trait_item":
		w.visitTraitItem(n)
		return
	case "struct_item":
		w.visitStructItem(n)
		return
	case "enum_item":
		w.visitEnumItem(n)
		return
	case "const_item", "static_item":
		w.visitConstItem(n)
	case "macro_definition":
		w.visitMacroDefinition(n)
	case "macro_invocation":
		w.visitMacroInvocation(n)
	case "match_expression":
		w.visitMatchExpression(n)
	case "call_expression":
		// Top-level call sites outside any function (rare) still register
		// in the usage tables, just without a CallerPath.
		w.recordCallUsage(n)
	case "identifier", "scoped_identifier":
		w.visitIdentifierUsage(n)
	case "type_identifier":
		w.visitTypeIdentifierUsage(n)
	case "lifetime":
		w.visitLifetimeUsage(n)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		w.visit(n.Child(i))
	}
}

// visitChildren recurses into every child without re-dispatching through
// visit's own-type cases having already fired; used by handlers that want
// plain recursion after doing their own work.
func (w *walker) visitChildren(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		w.visit(n.Child(i))
	}
}

func (w *walker) text(n *sitter.Node) string { return nodeText(w.content, n) }

func childByType(n *sitter.Node, nodeType string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == nodeType {
			return c
		}
	}
	return nil
}

// visibilityOf reads an item's visibility_modifier child, if present.
func (w *walker) visibilityOf(n *sitter.Node) Visibility {
	vis := childByType(n, "visibility_modifier")
	if vis == nil {
		return VisPrivate
	}
	return visibilityFromKeywords(w.text(vis))
}
