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
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/deadmod/internal/errors"
	"github.com/kraklabs/deadmod/internal/logging"
	"github.com/kraklabs/deadmod/internal/metrics"
	"github.com/kraklabs/deadmod/internal/ui"
	"github.com/kraklabs/deadmod/pkg/deadcode"
)

// runAnalyze executes the 'analyze' CLI command: scan, extract, build every
// axis's reachability graph, and print the resulting report.
//
// Flags:
//   - --format: "plain" (default), "json", or "yaml"
//   - --no-cache: skip the on-disk content-addressed cache
//   - --workers: extraction worker count (default: NumCPU)
//   - --metrics-addr: HTTP listen address for Prometheus metrics
func runAnalyze(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	formatFlag := fs.String("format", "plain", "Output format: plain, json, or yaml")
	noCache := fs.Bool("no-cache", false, "Skip the on-disk content-addressed cache")
	workers := fs.Int("workers", 0, "Extraction worker count (0 = NumCPU)")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deadmod analyze [path] [options]

Description:
  Scans a single package rooted at [path] (default: current directory),
  extracts facts for all eight reachability axes, and prints the
  resulting dead-code report.

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
	if globals.Verbose >= 2 {
		logLevel = slog.LevelDebug
	} else if globals.Verbose >= 1 {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	sink := logging.NewSink(logger)
	defer sink.Close()

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics.Register(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				sink.Warn("cli.metrics.server_failed", "addr", *metricsAddr, "err", err.Error())
			}
		}()
	}

	bar := ui.ScanProgress(-1, "analyzing", globals.Quiet)

	result, err := deadcode.Analyze(root, deadcode.AnalyzeOptions{
		Workers:  *workers,
		UseCache: !*noCache,
		Sink:     sink,
	})
	_ = bar.Finish()
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	report := deadcode.BuildReport(result)
	printReport(os.Stdout, format, report, globals)
}

// printReport renders a *deadcode.Report in the requested format. "plain"
// renders a compact colorized summary line per axis, matching the
// teacher's ui.Dead/ui.Alive convention; "json"/"yaml" dump the full
// structured report.
func printReport(w *os.File, format OutputFormat, report *deadcode.Report, globals GlobalFlags) {
	if format != FormatPlain {
		if err := renderStructured(w, format, report); err != nil {
			errors.FatalError(errors.NewInternalError("render report", err), globals.JSON)
		}
		return
	}

	ui.Heading.Fprintln(w, "deadmod report")
	printAxisLine(w, "module", report.Module.TotalModules, report.Module.DeadCount)
	printAxisLine(w, "function", report.Function.TotalFunctions, report.Function.DeadCount)
	printAxisLine(w, "trait", report.Trait.TotalTraits, report.Trait.DeadCount)
	printAxisLine(w, "generic", report.Generic.TotalGenerics, report.Generic.DeadCount)
	printAxisLine(w, "macro", report.Macro.TotalMacros, report.Macro.DeadCount)
	printAxisLine(w, "const", report.Constant.TotalConstants, report.Constant.DeadCount)
	printAxisLine(w, "enum", report.Enum.TotalVariants, report.Enum.DeadVariants)
	printAxisLine(w, "match", report.Match.TotalArms, report.Match.DeadArms)

	for _, m := range report.Module.DeadModules {
		fmt.Fprintf(w, "  %s %s\n", ui.Dead.Sprint("dead module"), m)
	}
	for _, fn := range report.Function.DeadFunctions {
		fmt.Fprintf(w, "  %s %s (%s)\n", ui.Dead.Sprint("dead fn"), fn.FullPath, fn.File)
	}
}

func printAxisLine(w *os.File, axis string, total, dead int) {
	fmt.Fprintf(w, "%-10s total=%d dead=%s\n", axis, total, ui.DeadCount(dead))
}
