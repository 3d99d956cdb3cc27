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

// TestBuildMatchGraphWildcardMasking covers the "wildcard masking" scenario:
// a catch-all `_` arm followed by a more specific arm leaves that later arm
// unreachable.
func TestBuildMatchGraphWildcardMasking(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/main.rs",
			MatchArms: []MatchArmRecord{
				{Pattern: "Some(x)", Position: 0, TotalArms: 3, MatchID: 0, File: "src/main.rs"},
				{Pattern: "_", IsWildcard: true, Position: 1, TotalArms: 3, MatchID: 0, File: "src/main.rs"},
				{Pattern: "None", Position: 2, TotalArms: 3, MatchID: 0, File: "src/main.rs"},
			},
		},
	}

	g, roots := BuildMatchGraph(files)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)

	if len(dead) != 1 {
		t.Fatalf("Dead() = %v, want exactly one masked arm", dead)
	}
	wantKey := MatchArmKey("src/main.rs", 0, 2)
	if dead[0] != wantKey {
		t.Errorf("Dead()[0] = %q, want %q (the arm after the wildcard)", dead[0], wantKey)
	}

	reasons := matchArmReasons(files)
	if reasons[wantKey] != ReasonMaskedByWildcard {
		t.Errorf("reason = %v, want ReasonMaskedByWildcard", reasons[wantKey])
	}
}

// TestBuildMatchGraphFinalWildcardIsAlive covers the common, idiomatic case:
// a wildcard as the last arm is never a masking hazard.
func TestBuildMatchGraphFinalWildcardIsAlive(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/main.rs",
			MatchArms: []MatchArmRecord{
				{Pattern: "Some(x)", Position: 0, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
				{Pattern: "_", IsWildcard: true, Position: 1, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
			},
		},
	}
	g, roots := BuildMatchGraph(files)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)
	if len(dead) != 0 {
		t.Fatalf("Dead() = %v, want none", dead)
	}
}

// TestBuildMatchGraphNonFinalWildcardIsSmellNotDead covers the distinction
// spec.md draws between a masking hazard (the arm itself is a smell, not
// dead) and the arms it actually masks (which are dead).
func TestBuildMatchGraphNonFinalWildcardIsSmellNotDead(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/main.rs",
			MatchArms: []MatchArmRecord{
				{Pattern: "_", IsWildcard: true, Position: 0, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
				{Pattern: "None", Position: 1, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
			},
		},
	}
	reasons := matchArmReasons(files)
	wildcardKey := MatchArmKey("src/main.rs", 0, 0)
	if reasons[wildcardKey] != ReasonNonFinalWildcard {
		t.Errorf("wildcard reason = %v, want ReasonNonFinalWildcard", reasons[wildcardKey])
	}

	g, roots := BuildMatchGraph(files)
	reached := Reachable(g, roots)
	if _, ok := reached[wildcardKey]; !ok {
		t.Error("a non-final wildcard arm is a smell, not dead: it must still be a root")
	}
}

func TestBuildMatchGraphRepeatedPatternIsNeverUsed(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/main.rs",
			MatchArms: []MatchArmRecord{
				{Pattern: "1", Position: 0, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
				{Pattern: "1", Position: 1, TotalArms: 2, MatchID: 0, File: "src/main.rs"},
			},
		},
	}
	reasons := matchArmReasons(files)
	dupKey := MatchArmKey("src/main.rs", 0, 1)
	if reasons[dupKey] != ReasonNeverUsed {
		t.Errorf("reason = %v, want ReasonNeverUsed", reasons[dupKey])
	}
}
