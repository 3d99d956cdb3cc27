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
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/kraklabs/deadmod/internal/logging"
)

// defaultPrunedDirs are always skipped, regardless of caller-supplied
// additions.
var defaultPrunedDirs = map[string]struct{}{
	"target":       {},
	".git":         {},
	"node_modules": {},
	".cargo":       {},
}

// Scanner walks a package's source tree and yields source file paths,
// pruning entire subtrees at the directory level so cost scales with the
// kept subtree size, not the full tree (spec.md §4.1).
type Scanner struct {
	ExtraPrune map[string]struct{}
	sink       *logging.Sink
}

// NewScanner creates a Scanner. extraPrune names additional directories to
// skip on top of the fixed defaults.
func NewScanner(extraPrune []string, sink *logging.Sink) *Scanner {
	prune := make(map[string]struct{}, len(extraPrune))
	for _, d := range extraPrune {
		prune[d] = struct{}{}
	}
	return &Scanner{ExtraPrune: prune, sink: sink}
}

func (s *Scanner) shouldPrune(dirName string) bool {
	if _, ok := defaultPrunedDirs[dirName]; ok {
		return true
	}
	_, ok := s.ExtraPrune[dirName]
	return ok
}

// Scan walks <root>/src and returns the sorted, forward-slash-normalized
// set of source file paths belonging to the package.
func (s *Scanner) Scan(root string) ([]string, error) {
	srcRoot := filepath.Join(root, "src")
	var files []string

	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if s.sink != nil {
				s.sink.Warn("scan.walk.error", "path", path, "err", err.Error())
			}
			return nil
		}
		if d.IsDir() {
			if path != srcRoot && s.shouldPrune(d.Name()) {
				if s.sink != nil {
					s.sink.Info("scan.dir.pruned", "path", path)
				}
				return fs.SkipDir
			}
			return nil
		}
		if isSourceFile(d.Name()) {
			files = append(files, normalizePath(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func isSourceFile(name string) bool {
	return filepath.Ext(name) == ".rs"
}

// normalizePath forces forward slashes so hash keys and report identities
// don't vary by platform (design note "Path normalization").
func normalizePath(p string) string {
	return filepath.ToSlash(p)
}
