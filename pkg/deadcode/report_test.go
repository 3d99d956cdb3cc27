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

import "testing"

func buildTestAnalysisResult() *AnalysisResult {
	files := []*FileFacts{
		{
			Path:   "src/main.rs",
			Module: &ModuleRecord{Name: "main"},
			Functions: []FunctionRecord{
				{Name: "main", FullPath: "main", File: "src/main.rs", Visibility: VisPublic},
				{Name: "orphan", FullPath: "orphan", File: "src/main.rs"},
			},
			Traits: []TraitRecord{{Name: "Greeter", Visibility: VisPrivate, File: "src/main.rs"}},
			TraitMethods: []TraitMethod{
				{Trait: "Greeter", Method: "greet", IsRequired: true, File: "src/main.rs"},
			},
			Macros: []MacroRecord{{Name: "log_it", Exported: false, File: "src/main.rs"}},
			Consts: []ConstRecord{{Name: "MAX", Kind: ConstConst, Visibility: VisPrivate, File: "src/main.rs"}},
			Variants: []EnumVariantRecord{
				{EnumName: "Color", VariantName: "Red", FullName: "Color::Red", File: "src/main.rs", EnumVisibility: VisPrivate},
				{EnumName: "Color", VariantName: "Blue", FullName: "Color::Blue", File: "src/main.rs", EnumVisibility: VisPrivate},
			},
			MatchArms: []MatchArmRecord{
				{Pattern: "Color::Red", Position: 0, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
				{Pattern: "_", IsWildcard: true, Position: 1, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
			},
		},
	}
	usage := newUsageTables()
	usage.VariantFullPaths["Color::Red"] = struct{}{}

	roots := map[string]struct{}{"main": {}}

	r := &AnalysisResult{Files: files, Usage: usage}
	r.ModuleGraph, r.ModuleRoots = BuildModuleGraph(files, roots)
	r.FunctionGraph, r.FunctionRoots = BuildFunctionGraph(files)
	r.TraitGraph, r.TraitRoots = BuildTraitGraph(files)
	r.GenericGraph, r.GenericRoots = BuildGenericGraph(files, usage)
	r.MacroGraph, r.MacroRoots = BuildMacroGraph(files, usage)
	r.ConstGraph, r.ConstRoots = BuildConstGraph(files, usage)
	r.EnumGraph, r.EnumRoots = BuildEnumGraph(files, usage)
	r.MatchGraph, r.MatchRoots = BuildMatchGraph(files)
	return r
}

func TestBuildReportFunctionAxis(t *testing.T) {
	report := BuildReport(buildTestAnalysisResult())
	if report.Function.DeadCount != 1 {
		t.Fatalf("Function.DeadCount = %d, want 1", report.Function.DeadCount)
	}
	if report.Function.DeadFunctions[0].FullPath != "orphan" {
		t.Errorf("DeadFunctions[0].FullPath = %q, want orphan", report.Function.DeadFunctions[0].FullPath)
	}
}

func TestBuildReportEnumAxisCountsOnlyTrulyDeadVariant(t *testing.T) {
	report := BuildReport(buildTestAnalysisResult())
	if report.Enum.TotalVariants != 2 {
		t.Fatalf("TotalVariants = %d, want 2", report.Enum.TotalVariants)
	}
	if report.Enum.DeadVariants != 1 {
		t.Fatalf("DeadVariants = %d, want 1 (Blue unused, Red used)", report.Enum.DeadVariants)
	}
	if report.Enum.FullyDeadEnums != 0 {
		t.Errorf("FullyDeadEnums = %d, want 0: Color still has a live variant", report.Enum.FullyDeadEnums)
	}
}

func TestBuildReportMacroAxisCountsExportedDead(t *testing.T) {
	report := BuildReport(buildTestAnalysisResult())
	if report.Macro.TotalMacros != 1 || report.Macro.DeadCount != 1 {
		t.Fatalf("Macro report = %+v, want one dead unexported macro", report.Macro)
	}
	if report.Macro.DeadExported != 0 {
		t.Errorf("DeadExported = %d, want 0: log_it is not #[macro_export]", report.Macro.DeadExported)
	}
}

func TestBuildReportMatchAxisFinalWildcardIsNotDead(t *testing.T) {
	report := BuildReport(buildTestAnalysisResult())
	if report.Match.TotalMatches != 1 || report.Match.TotalArms != 2 {
		t.Fatalf("Match report = %+v, want one match with two arms", report.Match)
	}
	if report.Match.DeadArms != 0 {
		t.Errorf("DeadArms = %d, want 0: the wildcard here is final, masking nothing", report.Match.DeadArms)
	}
}

func TestBuildReportTraitAxisFlagsUnusedRequiredMethod(t *testing.T) {
	report := BuildReport(buildTestAnalysisResult())
	if report.Trait.TotalTraits != 1 || report.Trait.RequiredMethods != 1 {
		t.Fatalf("Trait report = %+v", report.Trait)
	}
	if report.Trait.DeadCount == 0 {
		t.Error("expected Greeter::greet to be flagged dead: nothing implements or calls it")
	}
}
