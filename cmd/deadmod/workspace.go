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
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/deadmod/internal/errors"
	"github.com/kraklabs/deadmod/internal/logging"
	"github.com/kraklabs/deadmod/internal/ui"
	"github.com/kraklabs/deadmod/pkg/deadcode"
)

// workspaceReport is what "deadmod workspace" renders: each member's own
// report plus the merged, namespaced cross-package module report.
type workspaceReport struct {
	Members []memberReport        `json:"members"`
	Module  deadcode.ModuleReport `json:"module"`
}

type memberReport struct {
	Package string           `json:"package"`
	Path    string           `json:"path"`
	Error   string           `json:"error,omitempty"`
	Report  *deadcode.Report `json:"report,omitempty"`
}

// runWorkspace executes the 'workspace' CLI command: discover every member
// of a Cargo workspace and analyze them in parallel (spec.md §4.8).
func runWorkspace(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("workspace", flag.ExitOnError)
	formatFlag := fs.String("format", "plain", "Output format: plain, json, or yaml")
	noCache := fs.Bool("no-cache", false, "Skip the on-disk content-addressed cache")
	workers := fs.Int("workers", 0, "Extraction worker count per member (0 = NumCPU)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deadmod workspace [path] [options]

Description:
  Discovers every member package of the Cargo workspace rooted at [path]
  (default: current directory) and analyzes each one in parallel, then
  merges their module graphs into one "<package>::<module>"-namespaced
  report.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	format, err := parseOutputFormat(*formatFlag)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if globals.JSON {
		format = FormatJSON
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	logLevel := slog.LevelWarn
	if globals.Verbose >= 1 {
		logLevel = slog.LevelInfo
	}
	sink := logging.NewSink(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	defer sink.Close()

	manifest, err := deadcode.LoadManifest(root)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if !manifest.IsWorkspace() {
		errors.FatalError(errors.NewWorkspaceError(root, "not a workspace: no [workspace] section in Cargo.toml"), globals.JSON)
	}

	wr, err := deadcode.AnalyzeWorkspace(root, manifest, deadcode.AnalyzeOptions{
		Workers:  *workers,
		UseCache: !*noCache,
		Sink:     sink,
	})
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	out := workspaceReport{
		Module: moduleReportFromGraph(wr),
	}
	for _, m := range wr.Members {
		mr := memberReport{Package: m.Package, Path: m.Path}
		if m.Err != nil {
			mr.Error = m.Err.Error()
		} else {
			rep := deadcode.BuildReport(m.Result)
			mr.Report = rep
		}
		out.Members = append(out.Members, mr)
	}

	if format != FormatPlain {
		if err := renderStructured(os.Stdout, format, out); err != nil {
			errors.FatalError(errors.NewInternalError("render workspace report", err), globals.JSON)
		}
		return
	}

	ui.Heading.Fprintln(os.Stdout, "deadmod workspace report")
	fmt.Fprintf(os.Stdout, "module (workspace-wide) total=%d dead=%s\n", out.Module.TotalModules, ui.DeadCount(out.Module.DeadCount))
	for _, mr := range out.Members {
		if mr.Error != "" {
			fmt.Fprintf(os.Stdout, "  %s %s: %s\n", ui.Warn.Sprint("skipped"), mr.Package, mr.Error)
			continue
		}
		fmt.Fprintf(os.Stdout, "  %s function dead=%s trait dead=%s\n", mr.Package,
			ui.DeadCount(mr.Report.Function.DeadCount), ui.DeadCount(mr.Report.Trait.DeadCount))
	}
}

func moduleReportFromGraph(wr *deadcode.WorkspaceResult) deadcode.ModuleReport {
	reached := deadcode.Reachable(wr.ModuleGraph, wr.ModuleRoots)
	dead := deadcode.Dead(wr.ModuleGraph, reached)
	return deadcode.ModuleReport{
		TotalModules: len(wr.ModuleGraph.Nodes),
		Reachable:    len(reached),
		DeadCount:    len(dead),
		DeadModules:  dead,
	}
}
