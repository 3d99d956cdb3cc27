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
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	dmerrors "github.com/kraklabs/deadmod/internal/errors"
	"github.com/kraklabs/deadmod/internal/logging"
)

// MemberResult is one workspace member's own analysis, plus the package
// name its module-axis nodes were namespaced under.
type MemberResult struct {
	Package string
	Path    string
	Result  *AnalysisResult
	Err     error
}

// WorkspaceResult bundles every member's analysis plus the merged,
// cross-package module graph (spec.md §4.8).
type WorkspaceResult struct {
	Root    string
	Members []*MemberResult

	// ModuleGraph namespaces every member's module nodes as
	// "<package>::<module>" and copies each member's own edges under that
	// prefix. No edge links modules of two different members: a module's
	// Refs naming another member's module adds nothing to this graph.
	ModuleGraph *Graph
	ModuleRoots []string
}

// cargoMetadata is the subset of `cargo metadata --no-deps --format-version=1`
// this tool reads: each workspace member's name and its manifest directory.
type cargoMetadata struct {
	Packages []struct {
		Name         string `json:"name"`
		ManifestPath string `json:"manifest_path"`
	} `json:"packages"`
}

// DiscoverMembers resolves a workspace's member package directories,
// preferring the package manager's own metadata command over parsing the
// manifest's glob patterns by hand (spec.md §4.8). Running `cargo` here is
// invoking the *analyzed program's* package manager, not the Go toolchain.
func DiscoverMembers(root string, manifest *Manifest, sink *logging.Sink) []string {
	if dirs := discoverMembersViaCargo(root, sink); dirs != nil {
		return dirs
	}
	return discoverMembersViaManifest(root, manifest, sink)
}

func discoverMembersViaCargo(root string, sink *logging.Sink) []string {
	ctx, cancel := context.WithTimeout(context.Background(), cargoMetadataTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "cargo", "metadata", "--no-deps", "--format-version=1")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		if sink != nil {
			sink.Info("workspace.cargo_metadata.unavailable", "root", root, "err", err.Error())
		}
		return nil
	}

	var meta cargoMetadata
	if err := json.Unmarshal(out, &meta); err != nil {
		if sink != nil {
			sink.Warn("workspace.cargo_metadata.parse_error", "root", root, "err", err.Error())
		}
		return nil
	}

	dirs := make([]string, 0, len(meta.Packages))
	for _, pkg := range meta.Packages {
		dir := filepath.Dir(pkg.ManifestPath)
		if dir == "" || dir == "." {
			continue
		}
		dirs = append(dirs, normalizePath(dir))
	}
	sort.Strings(dirs)
	return dirs
}

// discoverMembersViaManifest is the fallback when `cargo` isn't on PATH or
// the call-out otherwise fails: glob each `[workspace] members` entry
// relative to root and keep only directories that declare their own
// manifest, per spec.md §4.8.
func discoverMembersViaManifest(root string, manifest *Manifest, sink *logging.Sink) []string {
	if manifest == nil || manifest.Workspace == nil {
		return nil
	}
	var dirs []string
	for _, pattern := range manifest.Workspace.Members {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			if sink != nil {
				sink.Warn("workspace.member_glob.invalid", "pattern", pattern, "err", err.Error())
			}
			continue
		}
		for _, m := range matches {
			if fileExists(filepath.Join(m, "Cargo.toml")) {
				dirs = append(dirs, normalizePath(m))
			}
		}
	}
	sort.Strings(dirs)
	return dirs
}

// cargoMetadataTimeout bounds the call-out so a hung or missing cargo binary
// never stalls an analysis run; the manifest-glob fallback takes over.
const cargoMetadataTimeout = 10 * time.Second

// AnalyzeWorkspace runs Analyze against every workspace member in parallel
// (errgroup, capped at NumCPU), isolates per-member failures so one broken
// package never aborts its siblings, and merges the per-member module
// graphs into one workspace-wide graph with "<package>::<module>" node
// names, per spec.md §4.8.
func AnalyzeWorkspace(root string, manifest *Manifest, opts AnalyzeOptions) (*WorkspaceResult, error) {
	sink := opts.Sink
	memberDirs := DiscoverMembers(root, manifest, sink)
	if len(memberDirs) == 0 {
		return nil, dmerrors.NewWorkspaceError(root, "no workspace members discovered")
	}

	members := make([]*MemberResult, len(memberDirs))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for i, dir := range memberDirs {
		i, dir := i, dir
		g.Go(func() error {
			pkgName := packageNameFor(dir, sink)
			memberOpts := opts
			res, err := Analyze(dir, memberOpts)
			members[i] = &MemberResult{Package: pkgName, Path: dir, Result: res, Err: err}
			if err != nil && sink != nil {
				sink.Warn("workspace.member.failed", "package", pkgName, "path", dir, "err", err.Error())
			}
			// Member failures are isolated in MemberResult.Err rather than
			// returned here, so errgroup never cancels sibling members.
			return nil
		})
	}
	_ = g.Wait()

	wr := &WorkspaceResult{Root: root, Members: members}
	wr.ModuleGraph, wr.ModuleRoots = buildWorkspaceModuleGraph(members)
	return wr, nil
}

func packageNameFor(dir string, sink *logging.Sink) string {
	m, err := LoadManifest(dir)
	if err != nil || m.Package == nil || m.Package.Name == "" {
		if sink != nil {
			sink.Info("workspace.member.name_fallback", "path", dir)
		}
		return filepath.Base(dir)
	}
	return m.Package.Name
}

// buildWorkspaceModuleGraph merges every succeeding member's module graph
// into one namespaced graph: each node becomes "<package>::<module>", and
// each member's own reference set is rewritten to the same prefix before
// the edges are copied over, per spec.md §4.8's literal namespacing rule.
func buildWorkspaceModuleGraph(members []*MemberResult) (*Graph, []string) {
	g := NewGraph()
	var roots []string
	for _, m := range members {
		if m.Err != nil || m.Result == nil {
			continue
		}
		prefix := m.Package + "::"
		for node := range m.Result.ModuleGraph.Nodes {
			g.AddNode(prefix + node)
		}
		for from, tos := range m.Result.ModuleGraph.Edges {
			for to := range tos {
				g.AddEdge(prefix+from, prefix+to)
			}
		}
		for _, r := range m.Result.ModuleRoots {
			roots = append(roots, prefix+r)
		}
	}
	sort.Strings(roots)
	return g, roots
}
