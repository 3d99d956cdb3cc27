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

	"github.com/kraklabs/deadmod/internal/logging"
)

// DetectRoots identifies entry modules from filesystem conventions
// (spec.md §4.7). Errors on individual directory reads are logged and
// suppressed; the returned set is best-effort.
func DetectRoots(root string, sink *logging.Sink) map[string]struct{} {
	entries := make(map[string]struct{})
	srcRoot := filepath.Join(root, "src")

	if fileExists(filepath.Join(srcRoot, "main.rs")) {
		entries["main"] = struct{}{}
	}
	if fileExists(filepath.Join(srcRoot, "lib.rs")) {
		entries["lib"] = struct{}{}
	}

	binDir := filepath.Join(srcRoot, "bin")
	dirEntries, err := os.ReadDir(binDir)
	if err != nil {
		if !os.IsNotExist(err) && sink != nil {
			sink.Warn("root.bin_dir.read_error", "path", binDir, "err", err.Error())
		}
		return entries
	}
	for _, de := range dirEntries {
		if de.IsDir() {
			// src/bin/<x>/main.rs
			if fileExists(filepath.Join(binDir, de.Name(), "main.rs")) {
				entries[de.Name()] = struct{}{}
			}
			continue
		}
		// src/bin/<x>.rs
		name := de.Name()
		if filepath.Ext(name) == ".rs" {
			entries[trimExt(name)] = struct{}{}
		}
	}
	return entries
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
