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

import "strings"

// BuildFunctionGraph builds the call graph: one node per declared function,
// an edge for every call site whose target it can match. Roots are items
// the crate cannot prove are unreachable from outside itself: pub items,
// #[test] functions, #[no_mangle] extern functions, and any "main".
func BuildFunctionGraph(files []*FileFacts) (*Graph, []string) {
	g := NewGraph()
	fnByPath := make(map[string]FunctionRecord)
	bySuffix := make(map[string][]string)
	var declared []string

	for _, f := range files {
		for _, fn := range f.Functions {
			g.AddNode(fn.FullPath)
			fnByPath[fn.FullPath] = fn
			declared = append(declared, fn.FullPath)
			last := fn.Name
			bySuffix[last] = append(bySuffix[last], fn.FullPath)
		}
	}

	resolver := NewResolver()
	for _, f := range files {
		for _, call := range f.Calls {
			rc := resolver.Resolve(call, f.ModulePath, f.Imports)
			for _, target := range matchCallTargets(rc, call, fnByPath, bySuffix, declared) {
				g.AddEdge(call.CallerPath, target)
			}
		}
	}

	var roots []string
	for _, fn := range fnByPath {
		if fn.Visibility == VisPublic || fn.IsTest || fn.IsExternFn || fn.Name == "main" {
			roots = append(roots, fn.FullPath)
		}
	}
	return g, roots
}

// matchCallTargets resolves one call to the declared function(s) it reaches,
// in three widening stages: exact qualified-path match, path-suffix match
// (handles a resolved path that's missing a module prefix we couldn't
// infer), and finally a bare-name match across every declared function
// sharing that name. Stage three is deliberately unresolved-dispatch
// conservative: a method call through a trait object is attributed to every
// same-named method, rather than none, so dynamic dispatch never produces a
// false "dead" verdict.
func matchCallTargets(rc ResolvedCall, call CallSite, fnByPath map[string]FunctionRecord, bySuffix map[string][]string, declared []string) []string {
	if rc.ResolvedPath != "" {
		if _, ok := fnByPath[rc.ResolvedPath]; ok {
			return []string{rc.ResolvedPath}
		}
		suffix := "::" + rc.ResolvedPath
		var hits []string
		for _, d := range declared {
			if strings.HasSuffix(d, suffix) {
				hits = append(hits, d)
			}
		}
		if len(hits) > 0 {
			return hits
		}
	}

	name := call.MethodName
	if name == "" {
		name = call.DirectName
	}
	if name == "" {
		return nil
	}
	return bySuffix[name]
}
