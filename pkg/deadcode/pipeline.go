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
	"path/filepath"
	"strings"
	"time"

	"github.com/kraklabs/deadmod/internal/logging"
	"github.com/kraklabs/deadmod/internal/metrics"
)

// ToolVersion gates the on-disk cache: bump it whenever FileFacts' shape
// changes so a stale cache is never trusted across an upgrade.
const ToolVersion = "0.1.0"

// AnalysisResult bundles one package's extracted facts and every axis's
// reachability graph, ready for report.go to render.
type AnalysisResult struct {
	Root  string
	Files []*FileFacts
	Usage *UsageTables
	Stats *ExtractionStats

	ModuleGraph, FunctionGraph, TraitGraph, GenericGraph *Graph
	MacroGraph, ConstGraph, EnumGraph, MatchGraph        *Graph

	ModuleRoots, FunctionRoots, TraitRoots, GenericRoots []string
	MacroRoots, ConstRoots, EnumRoots, MatchRoots        []string
}

// AnalyzeOptions configures one Analyze call.
type AnalyzeOptions struct {
	ExtraPrune []string
	Workers    int
	UseCache   bool
	Sink       *logging.Sink
}

// Analyze runs the full pipeline against one package rooted at root: scan,
// cache-aware parallel extraction, path resolution, and all eight axis
// graphs. It never returns an error for per-file problems (those are
// logged and folded into Stats.FilesFailed); it returns an error only when
// the package itself can't be scanned at all.
func Analyze(root string, opts AnalyzeOptions) (*AnalysisResult, error) {
	sink := opts.Sink
	root = filepath.Clean(root)

	scanStart := time.Now()
	scanner := NewScanner(opts.ExtraPrune, sink)
	paths, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	metrics.ScanDuration.Observe(time.Since(scanStart).Seconds())

	extractStart := time.Now()
	extractor := NewTreeSitterExtractor(sink)
	resolveModulePath := func(path string) []string { return modulePathFor(root, path) }

	var files []*FileFacts
	var stats *ExtractionStats

	if opts.UseCache {
		cache := NewCache(cacheFilePath(root), ToolVersion, sink)
		var fresh *CacheFile
		files, stats, fresh = cache.ExtractAll(paths, extractor, resolveModulePath, opts.Workers)
		if err := cache.Save(fresh); err != nil && sink != nil {
			sink.Warn("pipeline.cache.save_failed", "path", cache.Path, "err", err.Error())
		}
	} else {
		files, stats = extractWithoutCache(paths, extractor, resolveModulePath, opts.Workers)
	}
	metrics.ExtractDuration.Observe(time.Since(extractStart).Seconds())
	metrics.CacheHits.Add(float64(stats.CacheHits))
	metrics.CacheMisses.Add(float64(stats.CacheMisses))
	metrics.FilesDropped.Add(float64(stats.FilesFailed))

	applyDeclaredModuleVisibility(files)

	usage := newUsageTables()
	for _, f := range files {
		if f.Usage != nil {
			usage.merge(f.Usage)
		}
	}

	roots := DetectRoots(root, sink)

	result := &AnalysisResult{Root: root, Files: files, Usage: usage, Stats: stats}
	result.ModuleGraph, result.ModuleRoots = BuildModuleGraph(files, roots)
	result.FunctionGraph, result.FunctionRoots = BuildFunctionGraph(files)
	result.TraitGraph, result.TraitRoots = BuildTraitGraph(files)
	result.GenericGraph, result.GenericRoots = BuildGenericGraph(files, usage)
	result.MacroGraph, result.MacroRoots = BuildMacroGraph(files, usage)
	result.ConstGraph, result.ConstRoots = BuildConstGraph(files, usage)
	result.EnumGraph, result.EnumRoots = BuildEnumGraph(files, usage)
	result.MatchGraph, result.MatchRoots = BuildMatchGraph(files)

	for _, axis := range []struct {
		name  string
		graph *Graph
		roots []string
	}{
		{"module", result.ModuleGraph, result.ModuleRoots},
		{"function", result.FunctionGraph, result.FunctionRoots},
		{"trait", result.TraitGraph, result.TraitRoots},
		{"generic", result.GenericGraph, result.GenericRoots},
		{"macro", result.MacroGraph, result.MacroRoots},
		{"const", result.ConstGraph, result.ConstRoots},
		{"enum", result.EnumGraph, result.EnumRoots},
		{"match", result.MatchGraph, result.MatchRoots},
	} {
		dead := Dead(axis.graph, Reachable(axis.graph, axis.roots))
		metrics.DeadCount.WithLabelValues(axis.name).Set(float64(len(dead)))
	}

	return result, nil
}

func extractWithoutCache(paths []string, extractor *TreeSitterExtractor, modulePathFor func(string) []string, workers int) ([]*FileFacts, *ExtractionStats) {
	empty := &CacheFile{Version: cacheFormatVersion, Entries: make(map[string]*CacheEntry)}
	c := &Cache{}
	files, stats, _ := c.extractAllAgainst(empty, paths, extractor, modulePathFor, workers)
	return files, stats
}

// cacheFilePath is the fixed on-disk cache location, per spec.md §6.
func cacheFilePath(root string) string {
	return filepath.Join(root, ".deadmod-cache.json")
}

// modulePathFor derives a file's module-stack segments from its path
// relative to <root>/src, following Rust's own module-file convention:
// lib.rs/main.rs is the crate root (no segment), "mod.rs" names its parent
// directory rather than adding one, and src/bin/*.rs are themselves crate
// roots.
func modulePathFor(root, path string) []string {
	srcRoot := normalizePath(filepath.Join(root, "src"))
	rel := strings.TrimPrefix(path, srcRoot)
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimSuffix(rel, ".rs")
	if rel == "" {
		return nil
	}
	segs := strings.Split(rel, "/")
	if len(segs) == 0 {
		return nil
	}
	last := segs[len(segs)-1]
	switch {
	case len(segs) == 1 && (last == "lib" || last == "main"):
		return nil
	case last == "mod":
		segs = segs[:len(segs)-1]
	case len(segs) >= 2 && segs[0] == "bin":
		return nil
	}
	return segs
}

// applyDeclaredModuleVisibility resolves each module's effective
// visibility from how its parent declared it: a module is only as public
// as the least restrictive `mod` declaration naming it, since any
// declaring site can re-export it further.
func applyDeclaredModuleVisibility(files []*FileFacts) {
	declared := make(map[string]Visibility)
	for _, f := range files {
		if f.Module == nil {
			continue
		}
		for name, vis := range f.Module.DeclaredVisibility {
			if rankVisibility(vis) > rankVisibility(declared[name]) {
				declared[name] = vis
			}
		}
	}
	for _, f := range files {
		if f.Module == nil {
			continue
		}
		if vis, ok := declared[f.Module.Name]; ok && rankVisibility(vis) > rankVisibility(f.Module.Visibility) {
			f.Module.Visibility = vis
		}
	}
}

func rankVisibility(v Visibility) int {
	switch v {
	case VisPublic:
		return 4
	case VisPubCrate:
		return 3
	case VisPubIn:
		return 2
	case VisPubSuper:
		return 1
	default:
		return 0
	}
}
