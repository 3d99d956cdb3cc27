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

func TestBuildModuleGraphReachabilityThroughModDeclarations(t *testing.T) {
	files := []*FileFacts{
		{Module: &ModuleRecord{Name: "main", Refs: []string{"widgets"}}},
		{Module: &ModuleRecord{Name: "widgets", Refs: []string{"gear"}}},
		{Module: &ModuleRecord{Name: "gear"}},
		{Module: &ModuleRecord{Name: "unused"}},
	}
	roots := map[string]struct{}{"main": {}}

	g, rootList := BuildModuleGraph(files, roots)
	reached := Reachable(g, rootList)
	dead := Dead(g, reached)

	if len(dead) != 1 || dead[0] != "unused" {
		t.Fatalf("Dead() = %v, want [unused]", dead)
	}
	if _, ok := reached["gear"]; !ok {
		t.Error("expected transitive mod declaration main -> widgets -> gear to reach gear")
	}
}

func TestBuildModuleGraphGlobRefIsNotAnEdge(t *testing.T) {
	files := []*FileFacts{
		{Module: &ModuleRecord{Name: "main", Refs: []string{"widgets::*"}}},
		{Module: &ModuleRecord{Name: "widgets"}},
	}
	roots := map[string]struct{}{"main": {}}

	g, rootList := BuildModuleGraph(files, roots)
	reached := Reachable(g, rootList)
	dead := Dead(g, reached)

	if len(dead) != 1 || dead[0] != "widgets" {
		t.Fatalf("Dead() = %v, want [widgets]: a glob use hint must not count as a resolvable edge", dead)
	}
}

// TestApplyDeclaredModuleVisibilityTakesLeastRestrictiveDeclaration covers
// a module re-exported as pub from one declaring site and private from
// another: the module's effective visibility is the least restrictive one.
func TestApplyDeclaredModuleVisibilityTakesLeastRestrictiveDeclaration(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/a.rs",
			Module: &ModuleRecord{
				Name:               "a",
				DeclaredVisibility: map[string]Visibility{"shared": VisPrivate},
			},
		},
		{
			Path: "src/b.rs",
			Module: &ModuleRecord{
				Name:               "b",
				DeclaredVisibility: map[string]Visibility{"shared": VisPublic},
			},
		},
		{
			Path:   "src/shared.rs",
			Module: &ModuleRecord{Name: "shared", Visibility: VisPrivate},
		},
	}

	applyDeclaredModuleVisibility(files)

	if files[2].Module.Visibility != VisPublic {
		t.Errorf("Visibility = %v, want pub (least restrictive declaring site wins)", files[2].Module.Visibility)
	}
}
