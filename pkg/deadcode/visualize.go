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
	"sort"
	"strings"
)

// VizNode is one node in the visualizer JSON export (spec.md §6): a
// numeric id assigned by sorted identity, never the node's own name, so
// renderers never have to parse the domain-specific node string.
type VizNode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	File   string `json:"file"`
	Dead   bool   `json:"dead"`
	Module string `json:"module"`
}

type VizEdge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type VizStats struct {
	TotalNodes int `json:"total_nodes"`
	DeadNodes  int `json:"dead_nodes"`
	TotalEdges int `json:"total_edges"`
}

// VizGraph is the full JSON document a DOT/HTML/WebGL renderer consumes.
// Producing renderer output itself is out of scope (spec.md §1); only this
// lowering is part of the core's public surface.
type VizGraph struct {
	Nodes []VizNode `json:"nodes"`
	Edges []VizEdge `json:"edges"`
	Stats VizStats  `json:"stats"`
}

// nodeFile resolves a node identity to a source file, when the caller knows
// how to derive it (function/trait/etc. axes keep File on their record;
// ModuleVizGraph looks each module up in its fileByName map). It may
// return "" when no file is known for the node.
type nodeFile func(node string) string

// BuildVizGraph lowers one axis's Graph plus its reachability verdict into
// a VizGraph: node ids are assigned by sorting every node's identity string
// and numbering from zero, so the same graph always produces the same ids
// regardless of map iteration order.
func BuildVizGraph(g *Graph, reached map[string]struct{}, fileFor nodeFile) *VizGraph {
	names := make([]string, 0, len(g.Nodes))
	for n := range g.Nodes {
		names = append(names, n)
	}
	sort.Strings(names)

	ids := make(map[string]int, len(names))
	nodes := make([]VizNode, 0, len(names))
	var deadCount int
	for i, n := range names {
		ids[n] = i
		_, alive := reached[n]
		if !alive {
			deadCount++
		}
		file := ""
		if fileFor != nil {
			file = fileFor(n)
		}
		nodes = append(nodes, VizNode{
			ID:     i,
			Name:   n,
			File:   file,
			Dead:   !alive,
			Module: moduleStemOf(file),
		})
	}

	var edges []VizEdge
	for from, tos := range g.Edges {
		fromID, ok := ids[from]
		if !ok {
			continue
		}
		toList := make([]string, 0, len(tos))
		for to := range tos {
			toList = append(toList, to)
		}
		sort.Strings(toList)
		for _, to := range toList {
			toID, ok := ids[to]
			if !ok {
				continue
			}
			edges = append(edges, VizEdge{From: fromID, To: toID})
		}
	}

	return &VizGraph{
		Nodes: nodes,
		Edges: edges,
		Stats: VizStats{TotalNodes: len(nodes), DeadNodes: deadCount, TotalEdges: len(edges)},
	}
}

// moduleStemOf derives the "module" palette field from a file's base name
// (minus extension), spec.md §6's convention for grouping visualizer nodes
// by color. An empty file yields an empty module.
func moduleStemOf(file string) string {
	if file == "" {
		return ""
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FunctionVizGraph builds the call graph's visualizer export: every node's
// file comes from its FunctionRecord.
func FunctionVizGraph(r *AnalysisResult) *VizGraph {
	fileByPath := make(map[string]string)
	for _, f := range r.Files {
		for _, fn := range f.Functions {
			fileByPath[fn.FullPath] = fn.File
		}
	}
	reached := Reachable(r.FunctionGraph, r.FunctionRoots)
	return BuildVizGraph(r.FunctionGraph, reached, func(node string) string { return fileByPath[node] })
}

// ModuleVizGraph builds the module graph's visualizer export: a node's file
// is the module's own declaring source file.
func ModuleVizGraph(r *AnalysisResult) *VizGraph {
	fileByName := make(map[string]string)
	for _, f := range r.Files {
		if f.Module != nil {
			fileByName[f.Module.Name] = f.Module.Path
		}
	}
	reached := Reachable(r.ModuleGraph, r.ModuleRoots)
	return BuildVizGraph(r.ModuleGraph, reached, func(node string) string { return fileByName[node] })
}
