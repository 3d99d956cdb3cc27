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
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDiscoverMembersFallsBackToManifestGlob covers the no-cargo-binary
// path: member directories are found by globbing [workspace] members
// patterns and keeping only subdirectories that carry their own
// Cargo.toml.
func TestDiscoverMembersFallsBackToManifestGlob(t *testing.T) {
	root := t.TempDir()
	for _, member := range []string{"crates/one", "crates/two"} {
		dir := filepath.Join(root, member)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"x\"\n"), 0o644))
	}
	// A directory matching the glob but missing its own manifest must be
	// excluded.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "crates/not-a-member"), 0o755))

	manifest := &Manifest{Workspace: &ManifestWorkspace{Members: []string{"crates/*"}}}
	dirs := discoverMembersViaManifest(root, manifest, nil)

	var bases []string
	for _, d := range dirs {
		bases = append(bases, filepath.Base(d))
	}
	sort.Strings(bases)
	require.Equal(t, []string{"one", "two"}, bases)
}

func TestDiscoverMembersManifestNilWorkspaceReturnsNil(t *testing.T) {
	require.Nil(t, discoverMembersViaManifest(t.TempDir(), &Manifest{}, nil))
}

// TestBuildWorkspaceModuleGraphNamespacesAndSkipsFailedMembers covers the
// cross-package module graph merge: node and edge names get a
// "<package>::" prefix, and a member with a non-nil Err contributes
// nothing to the merged graph.
func TestBuildWorkspaceModuleGraphNamespacesAndSkipsFailedMembers(t *testing.T) {
	aGraph := NewGraph()
	aGraph.AddNode("main")
	aGraph.AddNode("widgets")
	aGraph.AddEdge("main", "widgets")

	bGraph := NewGraph()
	bGraph.AddNode("lib")

	members := []*MemberResult{
		{Package: "app", Result: &AnalysisResult{ModuleGraph: aGraph, ModuleRoots: []string{"main"}}},
		{Package: "core", Result: &AnalysisResult{ModuleGraph: bGraph, ModuleRoots: []string{"lib"}}},
		{Package: "broken", Err: errPlaceholder{}},
	}

	g, roots := buildWorkspaceModuleGraph(members)

	for _, want := range []string{"app::main", "app::widgets", "core::lib"} {
		require.Containsf(t, g.Nodes, want, "expected namespaced node %q in merged graph", want)
	}
	require.Contains(t, g.Edges["app::main"], "app::widgets", "expected the namespaced edge app::main -> app::widgets to survive the merge")
	require.NotContains(t, g.Nodes, "broken::main", "did not expect any node from the failed member")

	sort.Strings(roots)
	require.Equal(t, []string{"app::main", "core::lib"}, roots)
}

type errPlaceholder struct{}

func (errPlaceholder) Error() string { return "member analysis failed" }
