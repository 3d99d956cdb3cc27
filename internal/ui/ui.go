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

// Package ui holds deadmod's terminal presentation helpers: color output
// and progress bars for the CLI shell. Nothing here is load-bearing for
// the core analysis.
package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	Dead    = color.New(color.FgRed, color.Bold)
	Alive   = color.New(color.FgGreen)
	Warn    = color.New(color.FgYellow)
	Heading = color.New(color.FgCyan, color.Bold)
)

// InitColors decides whether color output is enabled: explicit --no-color
// always wins, otherwise color is enabled only when stdout is a terminal,
// matching the teacher's NO_COLOR-aware CLI.
func InitColors(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
		return
	}
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// DeadCount renders a count in red when non-zero, green when zero.
func DeadCount(n int) string {
	if n == 0 {
		return Alive.Sprintf("0")
	}
	return Dead.Sprintf("%d", n)
}
