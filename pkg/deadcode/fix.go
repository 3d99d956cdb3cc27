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
	"path/filepath"
	"strings"

	dmerrors "github.com/kraklabs/deadmod/internal/errors"
)

// Span locates a removal candidate within its file. StartLine/EndLine are
// 1-indexed; a zero Span means only the file is known.
type Span struct {
	StartLine int
	EndLine   int
}

// RemovalCandidate is the narrow contract an external fix engine needs:
// enough to locate a dead item and nothing about how to remove it. No file
// mutation happens in this repository (spec.md §1 Non-goals).
type RemovalCandidate struct {
	Axis     string
	Identity string
	File     string
	Span     Span
}

// RemovalCandidates flattens a Report's per-axis dead lists into the fix
// engine's narrow contract, one candidate per dead item across every axis.
func (rep *Report) RemovalCandidates() []RemovalCandidate {
	var out []RemovalCandidate
	for _, name := range rep.Module.DeadModules {
		out = append(out, RemovalCandidate{Axis: "module", Identity: name})
	}
	for _, fn := range rep.Function.DeadFunctions {
		out = append(out, RemovalCandidate{Axis: "function", Identity: fn.FullPath, File: fn.File})
	}
	for _, t := range rep.Trait.DeadTraitMethods {
		out = append(out, RemovalCandidate{Axis: "trait", Identity: t.Trait + itemSuffix(t.Item), File: t.File})
	}
	for _, t := range rep.Trait.DeadImplMethods {
		out = append(out, RemovalCandidate{Axis: "trait_impl", Identity: t.Trait + itemSuffix(t.Item), File: t.File})
	}
	for _, g := range rep.Generic.DeadGenerics {
		out = append(out, RemovalCandidate{Axis: "generic", Identity: g.Parent + "::" + g.Name, File: g.File})
	}
	for _, m := range rep.Macro.DeadMacros {
		out = append(out, RemovalCandidate{Axis: "macro", Identity: m.Name, File: m.File})
	}
	for _, c := range rep.Constant.DeadConstants {
		out = append(out, RemovalCandidate{Axis: "const", Identity: c.Name, File: c.File})
	}
	for _, v := range rep.Enum.DeadVariantList {
		out = append(out, RemovalCandidate{Axis: "enum_variant", Identity: v.FullName, File: v.File})
	}
	for _, arm := range rep.Match.DeadArmList {
		out = append(out, RemovalCandidate{Axis: "match_arm", Identity: arm.Pattern, File: arm.File})
	}
	return out
}

func itemSuffix(item string) string {
	if item == "" {
		return ""
	}
	return "::" + item
}

// ValidateOutputPath rejects an output path per spec.md §6's path-safety
// contract: absolute paths, any parent-directory ("..") component, or an
// embedded null byte are all refused. A fix engine additionally refuses to
// write through a symlink, which is the caller's responsibility since this
// package never touches the filesystem on the caller's behalf.
func ValidateOutputPath(path string) error {
	if strings.ContainsRune(path, 0) {
		return dmerrors.NewSecurityError("output path contains a null byte")
	}
	if filepath.IsAbs(path) {
		return dmerrors.NewSecurityError("output path must be relative: " + path)
	}
	cleaned := filepath.ToSlash(filepath.Clean(path))
	for _, seg := range strings.Split(cleaned, "/") {
		if seg == ".." {
			return dmerrors.NewSecurityError("output path escapes its base directory: " + path)
		}
	}
	return nil
}
