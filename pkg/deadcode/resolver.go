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

// ResolvedCall is one call site after path resolution: crate/self/super
// prefixes rewritten to absolute module segments, and a known import alias
// substituted for the module it stands for. It is deliberately not a full
// symbol resolution — the function reachability graph still matches a
// resolved path against declared paths by suffix, per the "tolerant
// matching" design note, rather than requiring exact equality.
type ResolvedCall struct {
	Original     string
	ResolvedPath string
	Segments     []string
	ViaImport    bool
}

// Resolver rewrites a file's call sites using that file's own module
// position and its `use` alias table, grounded on the teacher's
// CallResolver per-file import index.
type Resolver struct{}

func NewResolver() *Resolver { return &Resolver{} }

// Resolve rewrites one call's target path. fileModule is the module stack
// of the file the call was found in; imports is that file's alias table
// (FileFacts.Imports).
func (r *Resolver) Resolve(call CallSite, fileModule []string, imports map[string]string) ResolvedCall {
	raw := call.QualifiedPath
	if raw == "" {
		raw = call.DirectName
	}
	if raw == "" {
		raw = call.MethodName
	}
	if raw == "" {
		return ResolvedCall{}
	}

	segs := splitPathSegments(raw)
	if len(segs) == 0 {
		return ResolvedCall{Original: raw}
	}

	viaImport := false
	switch segs[0] {
	case "crate":
		segs = segs[1:]
	case "self":
		segs = append(append([]string(nil), fileModule...), segs[1:]...)
	case "super":
		base := append([]string(nil), fileModule...)
		for len(segs) > 0 && segs[0] == "super" {
			if len(base) > 0 {
				base = base[:len(base)-1]
			}
			segs = segs[1:]
		}
		segs = append(base, segs...)
	default:
		if resolved, ok := imports[segs[0]]; ok && resolved != "" {
			segs = append(strings.Split(resolved, "::"), segs[1:]...)
			viaImport = true
		}
	}

	return ResolvedCall{
		Original:     raw,
		ResolvedPath: strings.Join(segs, "::"),
		Segments:     segs,
		ViaImport:    viaImport,
	}
}
