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

package ui

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ScanProgress wraps progressbar.ProgressBar for the scan+extract stage.
// Quiet suppresses the bar entirely (used for --json output, matching the
// teacher's "json mode auto-enables quiet" rule).
func ScanProgress(total int, description string, quiet bool) *progressbar.ProgressBar {
	var out io.Writer = os.Stderr
	if quiet {
		out = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
