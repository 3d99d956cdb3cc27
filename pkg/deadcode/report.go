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
	"fmt"
	"sort"
)

// Report is the structured result of one Analyze call, one section per
// axis, matching the JSON schemas of spec.md §6 exactly.
type Report struct {
	Module   ModuleReport   `json:"module"`
	Function FunctionReport `json:"function"`
	Trait    TraitReport    `json:"trait"`
	Generic  GenericReport  `json:"generic"`
	Macro    MacroReport    `json:"macro"`
	Constant ConstantReport `json:"constant"`
	Enum     EnumReport     `json:"enum"`
	Match    MatchReport    `json:"match"`
}

type ModuleReport struct {
	TotalModules int      `json:"total_modules"`
	Reachable    int      `json:"reachable"`
	DeadCount    int      `json:"dead_count"`
	DeadModules  []string `json:"dead_modules"`
}

type DeadFunction struct {
	Name       string `json:"name"`
	FullPath   string `json:"full_path"`
	Visibility string `json:"visibility"`
	File       string `json:"file"`
	IsMethod   bool   `json:"is_method"`
}

type FunctionReport struct {
	TotalFunctions int            `json:"total_functions"`
	Reachable      int            `json:"reachable"`
	DeadCount      int            `json:"dead_count"`
	DeadFunctions  []DeadFunction `json:"dead_functions"`
}

type DeadTraitItem struct {
	Trait string `json:"trait"`
	Item  string `json:"item"` // method name, or "" for the trait itself
	File  string `json:"file"`
}

type TraitReport struct {
	TotalTraits        int             `json:"total_traits"`
	RequiredMethods    int             `json:"required_methods"`
	ProvidedMethods    int             `json:"provided_methods"`
	DeadCount          int             `json:"dead_count"`
	DeadTraitMethods   []DeadTraitItem `json:"dead_trait_methods"`
	DeadImplMethods    []DeadTraitItem `json:"dead_impl_methods"`
}

type DeadGeneric struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Parent       string   `json:"parent"`
	ParentKind   string   `json:"parent_kind"`
	File         string   `json:"file"`
	UnusedBounds []string `json:"unused_bounds"`
}

type GenericReport struct {
	TotalGenerics int           `json:"total_generics"`
	ByKind        map[string]int `json:"by_kind"`
	DeadCount     int           `json:"dead_count"`
	DeadGenerics  []DeadGeneric `json:"dead_generics"`
}

type DeadMacro struct {
	Name       string `json:"name"`
	Exported   bool   `json:"exported"`
	File       string `json:"file"`
	ModulePath string `json:"module_path"`
}

type MacroReport struct {
	TotalMacros    int         `json:"total_macros"`
	Exported       int         `json:"exported"`
	DeadCount      int         `json:"dead_count"`
	DeadExported   int         `json:"dead_exported"`
	DeadMacros     []DeadMacro `json:"dead_macros"`
}

type DeadConstant struct {
	Name       string `json:"name"`
	IsStatic   bool   `json:"is_static"`
	Visibility string `json:"visibility"`
	File       string `json:"file"`
	ModulePath string `json:"module_path"`
}

type ConstantReport struct {
	TotalConstants int            `json:"total_constants"`
	Consts         int            `json:"consts"`
	Statics        int            `json:"statics"`
	DeadCount      int            `json:"dead_count"`
	DeadConstants  []DeadConstant `json:"dead_constants"`
}

type DeadVariant struct {
	EnumName    string `json:"enum_name"`
	VariantName string `json:"variant_name"`
	FullName    string `json:"full_name"`
	Visibility  string `json:"visibility"`
	File        string `json:"file"`
}

type EnumReport struct {
	TotalEnums      int           `json:"total_enums"`
	TotalVariants   int           `json:"total_variants"`
	DeadVariants    int           `json:"dead_variants"`
	FullyDeadEnums  int           `json:"fully_dead_enums"`
	DeadVariantList []DeadVariant `json:"dead_variant_list"`
}

type DeadMatchArm struct {
	Pattern string `json:"pattern"`
	Reason  string `json:"reason"`
	File    string `json:"file"`
}

type MatchReport struct {
	TotalMatches int            `json:"total_matches"`
	TotalArms    int            `json:"total_arms"`
	Wildcards    int            `json:"wildcards"`
	DeadArms     int            `json:"dead_arms"`
	MaskedArms   int            `json:"masked_arms"`
	DeadArmList  []DeadMatchArm `json:"dead_arm_list"`
}

// BuildReport flattens an AnalysisResult into the per-axis report structs
// spec.md §6 mandates as the tool's actual output, rather than stopping at
// the Prometheus dead-set counts pipeline.go computes for itself.
func BuildReport(r *AnalysisResult) *Report {
	return &Report{
		Module:   buildModuleReport(r),
		Function: buildFunctionReport(r),
		Trait:    buildTraitReport(r),
		Generic:  buildGenericReport(r),
		Macro:    buildMacroReport(r),
		Constant: buildConstantReport(r),
		Enum:     buildEnumReport(r),
		Match:    buildMatchReport(r),
	}
}

func buildModuleReport(r *AnalysisResult) ModuleReport {
	reached := Reachable(r.ModuleGraph, r.ModuleRoots)
	dead := Dead(r.ModuleGraph, reached)
	return ModuleReport{
		TotalModules: len(r.ModuleGraph.Nodes),
		Reachable:    len(reached),
		DeadCount:    len(dead),
		DeadModules:  dead,
	}
}

func buildFunctionReport(r *AnalysisResult) FunctionReport {
	byPath := make(map[string]FunctionRecord)
	for _, f := range r.Files {
		for _, fn := range f.Functions {
			byPath[fn.FullPath] = fn
		}
	}
	reached := Reachable(r.FunctionGraph, r.FunctionRoots)
	dead := Dead(r.FunctionGraph, reached)

	out := make([]DeadFunction, 0, len(dead))
	for _, path := range dead {
		fn, ok := byPath[path]
		if !ok {
			continue
		}
		out = append(out, DeadFunction{
			Name:       fn.Name,
			FullPath:   fn.FullPath,
			Visibility: fn.Visibility.ReportString(),
			File:       fn.File,
			IsMethod:   fn.IsMethod,
		})
	}
	sortByFileThen(out, func(i int) (string, string) { return out[i].File, out[i].FullPath })

	return FunctionReport{
		TotalFunctions: len(r.FunctionGraph.Nodes),
		Reachable:      len(reached),
		DeadCount:      len(dead),
		DeadFunctions:  out,
	}
}

func buildTraitReport(r *AnalysisResult) TraitReport {
	var totalTraits, required, provided int
	traitFile := make(map[string]string)
	methodFile := make(map[string]string)
	for _, f := range r.Files {
		totalTraits += len(f.Traits)
		for _, t := range f.Traits {
			traitFile[t.Name] = t.File
		}
		for _, tm := range f.TraitMethods {
			key := tm.Trait + "::" + tm.Method
			methodFile[key] = tm.File
			if tm.IsRequired {
				required++
			} else {
				provided++
			}
		}
		for _, tim := range f.TraitImplMethods {
			key := tim.Trait + "::" + tim.Type + "::" + tim.Method
			methodFile[key] = tim.File
		}
	}

	reached := Reachable(r.TraitGraph, r.TraitRoots)
	dead := Dead(r.TraitGraph, reached)

	var deadTraitMethods, deadImplMethods []DeadTraitItem
	for _, node := range dead {
		if _, isTrait := traitFile[node]; isTrait {
			deadTraitMethods = append(deadTraitMethods, DeadTraitItem{Trait: node, File: traitFile[node]})
			continue
		}
		trait, item := splitLastSep(node)
		deadTraitMethods = append(deadTraitMethods, DeadTraitItem{Trait: trait, Item: item, File: methodFile[node]})
	}

	var deadImplFile string
	for _, f := range r.Files {
		for _, tim := range f.TraitImplMethods {
			if _, ok := reached[tim.Trait]; !ok {
				deadImplFile = tim.File
				deadImplMethods = append(deadImplMethods, DeadTraitItem{Trait: tim.Trait, Item: tim.Type + "::" + tim.Method, File: deadImplFile})
			}
		}
	}

	return TraitReport{
		TotalTraits:      totalTraits,
		RequiredMethods:  required,
		ProvidedMethods:  provided,
		DeadCount:        len(dead),
		DeadTraitMethods: deadTraitMethods,
		DeadImplMethods:  deadImplMethods,
	}
}

func buildGenericReport(r *AnalysisResult) GenericReport {
	byKey := make(map[string]GenericRecord)
	byKind := make(map[string]int)
	for _, f := range r.Files {
		for _, g := range f.Generics {
			key := g.ParentItem + "::" + g.Name
			byKey[key] = g
			byKind[string(g.Kind)]++
		}
	}
	reached := Reachable(r.GenericGraph, r.GenericRoots)
	dead := Dead(r.GenericGraph, reached)

	out := make([]DeadGeneric, 0, len(dead))
	for _, key := range dead {
		g, ok := byKey[key]
		if !ok {
			continue
		}
		out = append(out, DeadGeneric{
			Name:         g.Name,
			Kind:         string(g.Kind),
			Parent:       g.ParentItem,
			ParentKind:   string(g.ParentKind),
			File:         g.File,
			UnusedBounds: g.InlineBounds,
		})
	}

	return GenericReport{
		TotalGenerics: len(r.GenericGraph.Nodes),
		ByKind:        byKind,
		DeadCount:     len(dead),
		DeadGenerics:  out,
	}
}

func buildMacroReport(r *AnalysisResult) MacroReport {
	byName := make(map[string]MacroRecord)
	var exported int
	for _, f := range r.Files {
		for _, m := range f.Macros {
			byName[m.Name] = m
			if m.Exported {
				exported++
			}
		}
	}
	reached := Reachable(r.MacroGraph, r.MacroRoots)
	dead := Dead(r.MacroGraph, reached)

	out := make([]DeadMacro, 0, len(dead))
	var deadExported int
	for _, name := range dead {
		m, ok := byName[name]
		if !ok {
			continue
		}
		if m.Exported {
			deadExported++
		}
		out = append(out, DeadMacro{Name: m.Name, Exported: m.Exported, File: m.File, ModulePath: m.ModulePath})
	}

	return MacroReport{
		TotalMacros:  len(r.MacroGraph.Nodes),
		Exported:     exported,
		DeadCount:    len(dead),
		DeadExported: deadExported,
		DeadMacros:   out,
	}
}

func buildConstantReport(r *AnalysisResult) ConstantReport {
	byName := make(map[string]ConstRecord)
	var consts, statics int
	for _, f := range r.Files {
		for _, c := range f.Consts {
			byName[c.Name] = c
			if c.Kind == ConstStatic {
				statics++
			} else {
				consts++
			}
		}
	}
	reached := Reachable(r.ConstGraph, r.ConstRoots)
	dead := Dead(r.ConstGraph, reached)

	out := make([]DeadConstant, 0, len(dead))
	for _, name := range dead {
		c, ok := byName[name]
		if !ok {
			continue
		}
		out = append(out, DeadConstant{
			Name:       c.Name,
			IsStatic:   c.Kind == ConstStatic,
			Visibility: c.Visibility.ReportString(),
			File:       c.File,
			ModulePath: c.ModulePath,
		})
	}

	return ConstantReport{
		TotalConstants: len(r.ConstGraph.Nodes),
		Consts:         consts,
		Statics:        statics,
		DeadCount:      len(dead),
		DeadConstants:  out,
	}
}

func buildEnumReport(r *AnalysisResult) EnumReport {
	byFullName := make(map[string]EnumVariantRecord)
	enumNames := make(map[string]struct{})
	variantsByEnum := make(map[string][]string)
	for _, f := range r.Files {
		for _, v := range f.Variants {
			byFullName[v.FullName] = v
			enumNames[v.EnumName] = struct{}{}
			variantsByEnum[v.EnumName] = append(variantsByEnum[v.EnumName], v.FullName)
		}
	}
	reached := Reachable(r.EnumGraph, r.EnumRoots)
	dead := Dead(r.EnumGraph, reached)
	deadSet := make(map[string]struct{}, len(dead))
	for _, d := range dead {
		deadSet[d] = struct{}{}
	}

	out := make([]DeadVariant, 0, len(dead))
	for _, full := range dead {
		v, ok := byFullName[full]
		if !ok {
			continue
		}
		out = append(out, DeadVariant{
			EnumName:    v.EnumName,
			VariantName: v.VariantName,
			FullName:    v.FullName,
			Visibility:  v.EnumVisibility.ReportString(),
			File:        v.File,
		})
	}

	var fullyDead int
	for enum, variants := range variantsByEnum {
		_ = enum
		allDead := true
		for _, full := range variants {
			if _, ok := deadSet[full]; !ok {
				allDead = false
				break
			}
		}
		if allDead {
			fullyDead++
		}
	}

	return EnumReport{
		TotalEnums:      len(enumNames),
		TotalVariants:   len(r.EnumGraph.Nodes),
		DeadVariants:    len(dead),
		FullyDeadEnums:  fullyDead,
		DeadVariantList: out,
	}
}

func buildMatchReport(r *AnalysisResult) MatchReport {
	armByKey := make(map[string]MatchArmRecord)
	matchIDs := make(map[string]struct{})
	var wildcards int
	for _, f := range r.Files {
		for _, arm := range f.MatchArms {
			key := MatchArmKey(f.Path, arm.MatchID, arm.Position)
			armByKey[key] = arm
			matchIDs[fmt.Sprintf("%s#%d", f.Path, arm.MatchID)] = struct{}{}
			if arm.IsWildcard {
				wildcards++
			}
		}
	}
	reasons := matchArmReasons(r.Files)

	var deadArms, maskedArms int
	out := make([]DeadMatchArm, 0, len(reasons))
	for key, reason := range reasons {
		if reason == ReasonNonFinalWildcard {
			continue // smell only, not dead
		}
		arm, ok := armByKey[key]
		if !ok {
			continue
		}
		if reason == ReasonMaskedByWildcard {
			maskedArms++
		}
		deadArms++
		out = append(out, DeadMatchArm{Pattern: arm.Pattern, Reason: string(reason), File: arm.File})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Pattern < out[j].Pattern
	})

	return MatchReport{
		TotalMatches: len(matchIDs),
		TotalArms:    len(armByKey),
		Wildcards:    wildcards,
		DeadArms:     deadArms,
		MaskedArms:   maskedArms,
		DeadArmList:  out,
	}
}

// sortByFileThen sorts a []DeadFunction in place by the (file, secondary)
// key pair, so the dead-function list is ordered by containing file first.
func sortByFileThen(items []DeadFunction, key func(i int) (string, string)) {
	sort.Slice(items, func(i, j int) bool {
		fi, si := key(i)
		fj, sj := key(j)
		if fi != fj {
			return fi < fj
		}
		return si < sj
	})
}

func splitLastSep(s string) (string, string) {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == ':' && i > 0 && s[i-1] == ':' {
			return s[:i-1], s[i+1:]
		}
	}
	return s, ""
}
