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
	"reflect"
	"testing"
)

func TestReachableMultiHop(t *testing.T) {
	g := NewGraph()
	for _, n := range []string{"a", "b", "c", "d", "orphan"} {
		g.AddNode(n)
	}
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "d")

	reached := Reachable(g, []string{"a"})
	for _, want := range []string{"a", "b", "c", "d"} {
		if _, ok := reached[want]; !ok {
			t.Errorf("expected %q to be reachable from a", want)
		}
	}
	if _, ok := reached["orphan"]; ok {
		t.Error("orphan should not be reachable")
	}
}

func TestReachableMultiSource(t *testing.T) {
	g := NewGraph()
	g.AddNode("r1")
	g.AddNode("r2")
	g.AddNode("shared")
	g.AddEdge("r1", "shared")

	reached := Reachable(g, []string{"r1", "r2"})
	for _, want := range []string{"r1", "r2", "shared"} {
		if _, ok := reached[want]; !ok {
			t.Errorf("expected %q reachable", want)
		}
	}
}

func TestDeadIsSortedAndComplement(t *testing.T) {
	g := NewGraph()
	for _, n := range []string{"z_dead", "a_dead", "root", "child"} {
		g.AddNode(n)
	}
	g.AddEdge("root", "child")

	reached := Reachable(g, []string{"root"})
	dead := Dead(g, reached)

	want := []string{"a_dead", "z_dead"}
	if !reflect.DeepEqual(dead, want) {
		t.Fatalf("Dead() = %v, want %v", dead, want)
	}
}

func TestDeadDeterministicAcrossCalls(t *testing.T) {
	g := NewGraph()
	for _, n := range []string{"n5", "n1", "n3", "n2", "n4", "root"} {
		g.AddNode(n)
	}
	reached := Reachable(g, []string{"root"})

	first := Dead(g, reached)
	second := Dead(g, reached)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Dead() not deterministic: %v vs %v", first, second)
	}
}

func TestAddEdgeIgnoresEmptyEndpoints(t *testing.T) {
	g := NewGraph()
	g.AddEdge("", "x")
	g.AddEdge("x", "")
	if len(g.Edges) != 0 {
		t.Errorf("expected no edges recorded for empty endpoints, got %v", g.Edges)
	}
}
