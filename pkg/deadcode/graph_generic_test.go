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

// TestBuildGenericGraphUnusedTypeParamWithBounds covers the "unused generic
// plus bounds" scenario: a type parameter declared on a function but never
// referenced in its body is dead, bounds included, even though the function
// itself is reachable.
func TestBuildGenericGraphUnusedTypeParamWithBounds(t *testing.T) {
	files := []*FileFacts{
		{
			Path: "src/lib.rs",
			Generics: []GenericRecord{
				{Name: "T", Kind: GenericType, ParentItem: "process", ParentKind: ParentFunction, File: "src/lib.rs", InlineBounds: []string{"Clone", "Debug"}},
			},
		},
	}
	usage := newUsageTables() // "T" was never referenced

	g, roots := BuildGenericGraph(files, usage)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)

	if len(dead) != 1 || dead[0] != "process::T" {
		t.Fatalf("Dead() = %v, want [process::T]", dead)
	}
}

func TestBuildGenericGraphUsedTypeParamIsAlive(t *testing.T) {
	usage := newUsageTables()
	usage.GenericUsedTypes["process"] = map[string]struct{}{"T": {}}
	files := []*FileFacts{
		{
			Path: "src/lib.rs",
			Generics: []GenericRecord{
				{Name: "T", Kind: GenericType, ParentItem: "process", ParentKind: ParentFunction, File: "src/lib.rs"},
			},
		},
	}

	g, roots := BuildGenericGraph(files, usage)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)
	if len(dead) != 0 {
		t.Fatalf("Dead() = %v, want none", dead)
	}
}

func TestBuildGenericGraphLifetimeTrackedSeparatelyFromTypes(t *testing.T) {
	usage := newUsageTables()
	usage.GenericUsedTypes["process"] = map[string]struct{}{"'a": {}} // wrong bucket
	files := []*FileFacts{
		{
			Path: "src/lib.rs",
			Generics: []GenericRecord{
				{Name: "'a", Kind: GenericLifetime, ParentItem: "process", ParentKind: ParentFunction, File: "src/lib.rs"},
			},
		},
	}

	g, roots := BuildGenericGraph(files, usage)
	reached := Reachable(g, roots)
	dead := Dead(g, reached)
	if len(dead) != 1 {
		t.Fatalf("Dead() = %v, want the lifetime dead: a type-bucket hit must not count for a lifetime parameter", dead)
	}
}
