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

func TestBuildVizGraphAssignsDeterministicSortedIDs(t *testing.T) {
	g := NewGraph()
	g.AddNode("zebra")
	g.AddNode("alpha")
	g.AddEdge("alpha", "zebra")
	reached := Reachable(g, []string{"alpha"})

	viz := BuildVizGraph(g, reached, nil)

	if len(viz.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(viz.Nodes))
	}
	if viz.Nodes[0].Name != "alpha" || viz.Nodes[0].ID != 0 {
		t.Errorf("Nodes[0] = %+v, want alpha with id 0 (sorted order)", viz.Nodes[0])
	}
	if viz.Nodes[1].Name != "zebra" || viz.Nodes[1].ID != 1 {
		t.Errorf("Nodes[1] = %+v, want zebra with id 1", viz.Nodes[1])
	}
	if viz.Edges[0].From != 0 || viz.Edges[0].To != 1 {
		t.Errorf("Edges[0] = %+v, want {From:0 To:1}", viz.Edges[0])
	}
}

func TestBuildVizGraphMarksUnreachedNodesDead(t *testing.T) {
	g := NewGraph()
	g.AddNode("root")
	g.AddNode("orphan")
	reached := Reachable(g, []string{"root"})

	viz := BuildVizGraph(g, reached, nil)
	for _, n := range viz.Nodes {
		if n.Name == "orphan" && !n.Dead {
			t.Error("expected orphan node to be marked dead")
		}
		if n.Name == "root" && n.Dead {
			t.Error("expected root node to be marked alive")
		}
	}
	if viz.Stats.DeadNodes != 1 || viz.Stats.TotalNodes != 2 {
		t.Errorf("Stats = %+v, want 1 dead of 2 total", viz.Stats)
	}
}

func TestModuleStemOfDerivesFromFileBasename(t *testing.T) {
	if got := moduleStemOf("src/widgets/gear.rs"); got != "gear" {
		t.Errorf("moduleStemOf() = %q, want gear", got)
	}
	if got := moduleStemOf(""); got != "" {
		t.Errorf("moduleStemOf(\"\") = %q, want empty", got)
	}
}
