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

// ModuleRecord is one source file in module position (spec.md §3).
type ModuleRecord struct {
	Name        string
	Path        string
	Visibility  Visibility
	DocHidden   bool
	Refs        []string // union of `mod` declarations and use-path root segments
	ReExports   []string // names re-exported from `pub use`

	// DeclaredVisibility records, for each `mod X;`/`mod X { ... }` this file
	// declares, the visibility keyword that declaration used. The pipeline
	// aggregator uses this to set X's own ModuleRecord.Visibility, since a
	// module's effective visibility is decided by how its parent declares it,
	// not by anything in the child file itself.
	DeclaredVisibility map[string]Visibility
}

// FunctionRecord is a free function or method declaration.
type FunctionRecord struct {
	Name        string // simple name
	FullPath    string // module_stack :: [type] :: name, "::"-joined
	File        string
	IsMethod    bool
	ParentType  string // enclosing impl's type name, if any
	Visibility  Visibility
	IsTest      bool
	IsExternFn  bool // #[no_mangle] / extern entry
}

// CallSite is one call expression found in a function's body.
type CallSite struct {
	CallerPath   string // FullPath of the enclosing function
	DirectName   string // last segment of the called path
	QualifiedPath string // full dotted path when ≥2 segments were present
	MethodName   string // called method identifier, for method calls
}

// TraitRecord is one trait declaration, separate from its per-method
// TraitMethod entries so the trait axis can judge the trait itself (a pub
// trait is alive regardless of whether anything in this crate implements
// it) independently of judging its individual required methods.
type TraitRecord struct {
	Name       string
	Visibility Visibility
	File       string
}

// TraitMethod is one method declared inside a trait.
type TraitMethod struct {
	Trait      string
	Method     string
	IsRequired bool // no default body
	File       string
}

// TraitImplMethod is one method implemented for a trait impl.
type TraitImplMethod struct {
	Trait  string
	Type   string
	Method string
	File   string
}

// InherentImplMethod is one method on an inherent impl block.
type InherentImplMethod struct {
	Type       string
	Method     string
	IsStatic   bool
	Visibility Visibility
	File       string
}

// GenericKind is the kind of a generic parameter.
type GenericKind string

const (
	GenericType     GenericKind = "Type"
	GenericLifetime GenericKind = "Lifetime"
	GenericConst    GenericKind = "Const"
)

// ParentKind identifies the kind of item a generic parameter belongs to.
type ParentKind string

const (
	ParentFunction ParentKind = "function"
	ParentStruct   ParentKind = "struct"
	ParentEnum     ParentKind = "enum"
	ParentTrait    ParentKind = "trait"
	ParentImpl     ParentKind = "impl"
)

// GenericRecord is one declared generic parameter.
type GenericRecord struct {
	Name         string
	Kind         GenericKind
	ParentItem   string
	ParentKind   ParentKind
	File         string
	InlineBounds []string
}

// MacroRecord is one top-level macro definition.
type MacroRecord struct {
	Name       string
	Exported   bool
	File       string
	ModulePath string
}

// ConstKind distinguishes const from static declarations.
type ConstKind string

const (
	ConstConst  ConstKind = "const"
	ConstStatic ConstKind = "static"
)

// ConstRecord is one const or static declaration.
type ConstRecord struct {
	Name        string
	Kind        ConstKind
	Mutable     bool
	Visibility  Visibility
	File        string
	ModulePath  string
	EnclosingTy string // associated constant's enclosing type, if any
}

// EnumVariantRecord is one variant of one enum.
type EnumVariantRecord struct {
	EnumName       string
	VariantName    string
	FullName       string // "Enum::Variant"
	File           string
	EnumVisibility Visibility
}

// MatchArmReason classifies why a match arm is dead.
type MatchArmReason string

const (
	ReasonNeverUsed         MatchArmReason = "NeverUsed"
	ReasonMaskedByWildcard  MatchArmReason = "MaskedByWildcard"
	ReasonNonFinalWildcard  MatchArmReason = "NonFinalWildcard"
)

// MatchArmRecord is one arm of one match expression.
type MatchArmRecord struct {
	Pattern     string
	VariantName string // optional; leaf segment of the pattern, if any
	IsWildcard  bool
	Position    int // 0-indexed position within its match
	TotalArms   int
	File        string
	MatchID     int // groups arms belonging to the same match expression within File
}

// UsageTables aggregates every axis's usage sites for one file.
type UsageTables struct {
	CallNames          map[string]struct{}
	QualifiedCallPaths map[string]struct{}
	ResolvedCallPaths  map[string]struct{}
	VariantNames       map[string]struct{}
	VariantFullPaths   map[string]struct{}
	ConstNames         map[string]struct{}
	MacroNames         map[string]struct{}
	// GenericUsage buckets referenced type/lifetime identifiers by the
	// enclosing parent item's simple name, per spec.md §4.3.4.
	GenericUsedTypes     map[string]map[string]struct{}
	GenericUsedLifetimes map[string]map[string]struct{}
}

func newUsageTables() *UsageTables {
	return &UsageTables{
		CallNames:            make(map[string]struct{}),
		QualifiedCallPaths:   make(map[string]struct{}),
		ResolvedCallPaths:    make(map[string]struct{}),
		VariantNames:         make(map[string]struct{}),
		VariantFullPaths:     make(map[string]struct{}),
		ConstNames:           make(map[string]struct{}),
		MacroNames:           make(map[string]struct{}),
		GenericUsedTypes:     make(map[string]map[string]struct{}),
		GenericUsedLifetimes: make(map[string]map[string]struct{}),
	}
}

func (u *UsageTables) merge(other *UsageTables) {
	mergeSet(u.CallNames, other.CallNames)
	mergeSet(u.QualifiedCallPaths, other.QualifiedCallPaths)
	mergeSet(u.ResolvedCallPaths, other.ResolvedCallPaths)
	mergeSet(u.VariantNames, other.VariantNames)
	mergeSet(u.VariantFullPaths, other.VariantFullPaths)
	mergeSet(u.ConstNames, other.ConstNames)
	mergeSet(u.MacroNames, other.MacroNames)
	for parent, names := range other.GenericUsedTypes {
		if u.GenericUsedTypes[parent] == nil {
			u.GenericUsedTypes[parent] = make(map[string]struct{})
		}
		mergeSet(u.GenericUsedTypes[parent], names)
	}
	for parent, names := range other.GenericUsedLifetimes {
		if u.GenericUsedLifetimes[parent] == nil {
			u.GenericUsedLifetimes[parent] = make(map[string]struct{})
		}
		mergeSet(u.GenericUsedLifetimes[parent], names)
	}
}

func mergeSet(dst, src map[string]struct{}) {
	for k := range src {
		dst[k] = struct{}{}
	}
}

// FileFacts is the immutable, content-addressed result of extracting every
// axis from one file's content (spec.md §3 "File Fact").
type FileFacts struct {
	Path        string
	ContentHash string
	ModulePath  []string // enclosing module-stack segments this file was extracted under
	Module      *ModuleRecord
	Functions   []FunctionRecord
	Calls       []CallSite
	Traits           []TraitRecord
	TraitMethods     []TraitMethod
	TraitImplMethods []TraitImplMethod
	InherentMethods  []InherentImplMethod
	Generics    []GenericRecord
	Macros      []MacroRecord
	Consts      []ConstRecord
	Variants    []EnumVariantRecord
	MatchArms   []MatchArmRecord
	Usage       *UsageTables
	ParseFailed bool

	// Imports maps a `use ... as Alias` alias to the "::"-joined path it
	// stands for (a leading `crate` dropped), for the Path Resolver to
	// rewrite qualified calls. A path starting with `self` or `super` maps
	// to its root segment only.
	Imports map[string]string
}

func newFileFacts(path, hash string) *FileFacts {
	return &FileFacts{Path: path, ContentHash: hash, Usage: newUsageTables()}
}

// JoinPath builds a fully-qualified path by joining module-stack segments,
// an optional enclosing-type segment, and a name with "::", per spec.md
// §4.3 "Parent-path discipline".
func JoinPath(moduleStack []string, enclosingType, name string) string {
	segs := make([]string, 0, len(moduleStack)+2)
	segs = append(segs, moduleStack...)
	if enclosingType != "" {
		segs = append(segs, enclosingType)
	}
	segs = append(segs, name)
	return strings.Join(segs, "::")
}
