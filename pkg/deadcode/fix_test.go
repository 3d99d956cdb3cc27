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

func TestValidateOutputPathRejectsAbsolute(t *testing.T) {
	if err := ValidateOutputPath("/etc/passwd"); err == nil {
		t.Error("expected an absolute path to be rejected")
	}
}

func TestValidateOutputPathRejectsParentTraversal(t *testing.T) {
	if err := ValidateOutputPath("../../etc/passwd"); err == nil {
		t.Error("expected a '..' path to be rejected")
	}
	if err := ValidateOutputPath("reports/../../etc/passwd"); err == nil {
		t.Error("expected a '..' path buried mid-path to be rejected")
	}
}

func TestValidateOutputPathRejectsNullByte(t *testing.T) {
	if err := ValidateOutputPath("report\x00.json"); err == nil {
		t.Error("expected a path with an embedded null byte to be rejected")
	}
}

func TestValidateOutputPathAcceptsRelativePath(t *testing.T) {
	if err := ValidateOutputPath("out/report.json"); err != nil {
		t.Errorf("expected a clean relative path to be accepted, got %v", err)
	}
}

func TestRemovalCandidatesFlattensEveryAxis(t *testing.T) {
	rep := &Report{
		Module:   ModuleReport{DeadModules: []string{"unused"}},
		Function: FunctionReport{DeadFunctions: []DeadFunction{{FullPath: "orphan", File: "src/main.rs"}}},
		Trait: TraitReport{
			DeadTraitMethods: []DeadTraitItem{{Trait: "Greeter", Item: "greet", File: "src/g.rs"}},
			DeadImplMethods:  []DeadTraitItem{{Trait: "Greeter", Item: "Dog::greet", File: "src/g.rs"}},
		},
		Generic:  GenericReport{DeadGenerics: []DeadGeneric{{Name: "T", Parent: "process", File: "src/lib.rs"}}},
		Macro:    MacroReport{DeadMacros: []DeadMacro{{Name: "log_it", File: "src/m.rs"}}},
		Constant: ConstantReport{DeadConstants: []DeadConstant{{Name: "MAX", File: "src/c.rs"}}},
		Enum:     EnumReport{DeadVariantList: []DeadVariant{{FullName: "Color::Blue", File: "src/e.rs"}}},
		Match:    MatchReport{DeadArmList: []DeadMatchArm{{Pattern: "_", File: "src/m.rs"}}},
	}

	candidates := rep.RemovalCandidates()
	if len(candidates) != 9 {
		t.Fatalf("RemovalCandidates() returned %d candidates, want 9", len(candidates))
	}

	axes := make(map[string]bool)
	for _, c := range candidates {
		axes[c.Axis] = true
	}
	for _, want := range []string{"module", "function", "trait", "trait_impl", "generic", "macro", "const", "enum_variant", "match_arm"} {
		if !axes[want] {
			t.Errorf("expected a %q candidate among %+v", want, candidates)
		}
	}
}
