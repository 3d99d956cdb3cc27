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

// visitFunctionItem records a function or method declaration and, if it has
// a body, queues it for the second-pass call-site walk. The trailing string
// arg is unused; parent-type context comes from the path stack instead, since
// visitImplItem pushes the enclosing type before recursing.
func (w *walker) visitFunctionItem(n *sitter.Node, _ string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		w.visitChildren(n)
		return
	}
	name := w.text(nameNode)
	parentType := w.stack.currentType()

	isTest := w.pendingTest
	w.pendingTest = false
	isExternFn := w.pendingNoMangle
	w.pendingNoMangle = false

	rec := FunctionRecord{
		Name:       name,
		FullPath:   w.stack.qualify(name),
		File:       w.path,
		IsMethod:   parentType != "" && hasSelfParam(n),
		ParentType: parentType,
		Visibility: w.visibilityOf(n),
		IsTest:     isTest,
		IsExternFn: isExternFn,
	}
	w.facts.Functions = append(w.facts.Functions, rec)
	w.extractGenericParams(n, name, ParentFunction)

	w.pushItem(name)
	if params := n.ChildByFieldName("parameters"); params != nil {
		w.visitChildren(params)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		w.visit(ret)
	}
	if where := childByType(n, "where_clause"); where != nil {
		w.visitChildren(where)
	}
	body := n.ChildByFieldName("body")
	if body != nil {
		w.funcNodes = append(w.funcNodes, funcWithNode{rec: rec, node: body})
		w.visitChildren(body)
	}
	w.popItem()
}

func hasSelfParam(fn *sitter.Node) bool {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return false
	}
	return childByType(params, "self_parameter") != nil
}

// extractCallsIn walks one function body looking only for call_expression
// nodes, attributing each to callerPath. It does not descend into a nested
// function_item's body: that function gets its own entry in w.funcNodes and
// its calls are attributed there instead.
func (w *walker) extractCallsIn(n *sitter.Node, callerPath string) {
	if n == nil {
		return
	}
	if n.Type() == "function_item" {
		return
	}
	if n.Type() == "call_expression" {
		w.recordCallSite(n, callerPath)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		w.extractCallsIn(n.Child(i), callerPath)
	}
}

// recordCallUsage is the first-pass, caller-agnostic hook fired for every
// call_expression encountered during the general tree walk. It only swells
// the file's usage tables; CallSite edges with real caller attribution come
// from the second pass (extractCallsIn).
func (w *walker) recordCallUsage(n *sitter.Node) {
	direct, qualified, method := parseCallTarget(w, n)
	if direct != "" {
		w.facts.Usage.CallNames[direct] = struct{}{}
	}
	if qualified != "" {
		w.facts.Usage.QualifiedCallPaths[qualified] = struct{}{}
	}
	if method != "" {
		w.facts.Usage.CallNames[method] = struct{}{}
	}
}

func (w *walker) recordCallSite(n *sitter.Node, callerPath string) {
	direct, qualified, method := parseCallTarget(w, n)
	if direct == "" && qualified == "" && method == "" {
		return
	}
	w.facts.Calls = append(w.facts.Calls, CallSite{
		CallerPath:    callerPath,
		DirectName:    direct,
		QualifiedPath: qualified,
		MethodName:    method,
	})
}

// parseCallTarget classifies a call_expression's callee into a direct name,
// a fully qualified path (for Type::method / module::func forms), and a
// method name (for receiver.method() forms).
func parseCallTarget(w *walker, call *sitter.Node) (direct, qualified, method string) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return "", "", ""
	}
	switch fn.Type() {
	case "identifier":
		direct = w.text(fn)
	case "scoped_identifier":
		qualified = w.text(fn)
		if idx := strings.LastIndex(qualified, "::"); idx >= 0 {
			direct = qualified[idx+2:]
		} else {
			direct = qualified
		}
	case "field_expression":
		field := fn.ChildByFieldName("field")
		if field != nil {
			method = w.text(field)
		}
	default:
		direct = w.text(fn)
	}
	return direct, qualified, method
}
