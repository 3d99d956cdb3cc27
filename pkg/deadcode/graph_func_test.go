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

// TestBuildFunctionGraphSimpleOrphan covers the "simple orphan" scenario:
// a private free function nothing calls is dead, while main and whatever
// it calls are alive.
func TestBuildFunctionGraphSimpleOrphan(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/main.rs",
			Functions: []FunctionRecord{
				{Name: "main", FullPath: "main", File: "src/main.rs"},
				{Name: "used", FullPath: "used", File: "src/main.rs"},
				{Name: "orphan", FullPath: "orphan", File: "src/main.rs"},
			},
			Calls: []CallSite{
				{CallerPath: "main", DirectName: "used"},
			},
		},
	}

	g, roots := BuildFunctionGraph(files)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)

	if len(dead) != 1 || dead[0] != "orphan" {
		t.Fatalf("Dead() = %v, want [orphan]", dead)
	}
	if _, ok := reached["used"]; !ok {
		t.Error("expected 'used' to be reachable from main")
	}
}

// TestBuildFunctionGraphPubFunctionIsAlwaysARoot covers visibility-driven
// rootedness: an exported function is alive even with zero in-crate callers.
func TestBuildFunctionGraphPubFunctionIsAlwaysARoot(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/lib.rs",
			Functions: []FunctionRecord{
				{Name: "api", FullPath: "api", File: "src/lib.rs", Visibility: VisPublic},
				{Name: "helper", FullPath: "helper", File: "src/lib.rs"},
			},
		},
	}
	g, roots := BuildFunctionGraph(files)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)

	if _, ok := reached["api"]; !ok {
		t.Error("expected pub fn 'api' to be a root")
	}
	if len(dead) != 1 || dead[0] != "helper" {
		t.Fatalf("Dead() = %v, want [helper]", dead)
	}
}

// TestBuildFunctionGraphSuffixMatchResolvesUnqualifiedCall covers the
// path-suffix stage: a call the resolver couldn't fully qualify still
// reaches the one declared function whose path ends in "::" plus that name.
func TestBuildFunctionGraphSuffixMatchResolvesUnqualifiedCall(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/main.rs",
			Functions: []FunctionRecord{
				{Name: "main", FullPath: "main", File: "src/main.rs"},
				{Name: "helper", FullPath: "widgets::helper", File: "src/widgets.rs"},
			},
			Calls: []CallSite{
				{CallerPath: "main", DirectName: "helper"},
			},
		},
	}
	g, roots := BuildFunctionGraph(files)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)

	if len(dead) != 0 {
		t.Fatalf("Dead() = %v, want none", dead)
	}
	if _, ok := reached["widgets::helper"]; !ok {
		t.Error("expected suffix match to connect main -> widgets::helper")
	}
}

// TestBuildFunctionGraphUnresolvedDispatchIsConservative covers dynamic
// dispatch: a method call matched only by bare name is attributed to every
// same-named method rather than none, so trait-object dispatch never
// produces a false dead verdict.
func TestBuildFunctionGraphUnresolvedDispatchIsConservative(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/main.rs",
			Functions: []FunctionRecord{
				{Name: "main", FullPath: "main", File: "src/main.rs"},
				{Name: "speak", FullPath: "Dog::speak", File: "src/animal.rs", IsMethod: true, ParentType: "Dog"},
				{Name: "speak", FullPath: "Cat::speak", File: "src/animal.rs", IsMethod: true, ParentType: "Cat"},
			},
			Calls: []CallSite{
				{CallerPath: "main", MethodName: "speak"},
			},
		},
	}
	g, roots := BuildFunctionGraph(files)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)

	if len(dead) != 0 {
		t.Fatalf("Dead() = %v, want none: both speak() impls credited on unresolved dispatch", dead)
	}
}
