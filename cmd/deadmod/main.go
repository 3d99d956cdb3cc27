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

// Package main implements the deadmod CLI for running multi-axis
// dead-code analysis over a Rust-like source tree.
//
// Usage:
//
//	deadmod analyze [path]      Run analysis and print the per-axis report
//	deadmod workspace [path]    Run analysis across every workspace member
//	deadmod visualize [path]    Emit the visualizer JSON export
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/deadmod/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds flags shared by every subcommand.
type GlobalFlags struct {
	JSON    bool
	NoColor bool
	Verbose int
	Quiet   bool
}

func main() {
	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		verbose     = flag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
		quiet       = flag.BoolP("quiet", "q", false, "Suppress non-essential output (progress, info messages)")
	)

	// Stop parsing at the first non-flag argument so subcommand-specific
	// flags like "analyze --format yaml" reach the subcommand's own parser.
	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `deadmod - multi-axis dead-code analyzer

Usage:
  deadmod <command> [options]

Commands:
  analyze     Run analysis over one package and print the per-axis report
  workspace   Run analysis across every member of a Cargo workspace
  visualize   Emit the visualizer JSON export (module or function graph)

Global Options:
  --json            Output in JSON format
  --no-color        Disable color output (respects NO_COLOR env var)
  -v, --verbose     Increase verbosity (-v for info, -vv for debug)
  -q, --quiet       Suppress non-essential output
  -V, --version     Show version and exit

Examples:
  deadmod analyze .
  deadmod analyze . --format json
  deadmod analyze . --metrics-addr :9090
  deadmod visualize . --axis function --out graph.json

For detailed command help: deadmod <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("deadmod version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	if *quiet && *verbose > 0 {
		fmt.Fprintf(os.Stderr, "Error: cannot use --quiet and --verbose together\n")
		os.Exit(1)
	}

	// JSON mode auto-enables quiet so a progress bar never corrupts stdout.
	if *jsonOutput {
		*quiet = true
	}

	globals := GlobalFlags{
		JSON:    *jsonOutput,
		NoColor: *noColor,
		Verbose: *verbose,
		Quiet:   *quiet,
	}

	ui.InitColors(globals.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "analyze":
		runAnalyze(cmdArgs, globals)
	case "workspace":
		runWorkspace(cmdArgs, globals)
	case "visualize":
		runVisualize(cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
