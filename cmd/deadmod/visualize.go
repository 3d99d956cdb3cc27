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

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/deadmod/internal/errors"
	"github.com/kraklabs/deadmod/internal/logging"
	"github.com/kraklabs/deadmod/pkg/deadcode"
)

// runVisualize executes the 'visualize' CLI command: lower one axis's
// reachability graph into the visualizer JSON export (spec.md §6). The
// renderer collaborators that turn this into DOT/HTML/WebGL are out of
// scope; this emits only the JSON lowering.
func runVisualize(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("visualize", flag.ExitOnError)
	axis := fs.String("axis", "function", "Graph to export: module or function")
	outPath := fs.String("out", "", "Write to this file instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deadmod visualize [path] [options]

Description:
  Emits the visualizer JSON export for one axis's reachability graph:
  numeric node ids, a dead bool per node, and a module field for palette
  coloring.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	if *outPath != "" {
		if err := deadcode.ValidateOutputPath(*outPath); err != nil {
			errors.FatalError(err, globals.JSON)
		}
	}

	sink := logging.NewSink(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	defer sink.Close()

	result, err := deadcode.Analyze(root, deadcode.AnalyzeOptions{UseCache: true, Sink: sink})
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	var viz *deadcode.VizGraph
	switch *axis {
	case "module":
		viz = deadcode.ModuleVizGraph(result)
	case "function":
		viz = deadcode.FunctionVizGraph(result)
	default:
		errors.FatalError(errors.NewConfigError("", "unknown --axis "+*axis+" (want module or function)"), globals.JSON)
	}

	data, err := json.MarshalIndent(viz, "", "  ")
	if err != nil {
		errors.FatalError(errors.NewInternalError("marshal visualizer export", err), globals.JSON)
	}

	if *outPath == "" {
		os.Stdout.Write(data)
		fmt.Println()
		return
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		errors.FatalError(errors.NewIOError(*outPath, "write visualizer export", err), globals.JSON)
	}
}
