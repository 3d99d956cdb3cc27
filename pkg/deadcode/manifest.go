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

	"github.com/BurntSushi/toml"

	dmerrors "github.com/kraklabs/deadmod/internal/errors"
)

// Manifest is the package manifest consumed from <root>/Cargo.toml-style
// metadata (spec.md §6): a `[package]` section with at least `name`, or a
// `[workspace]` section whose `members` enumerates package subdirectories.
type Manifest struct {
	Package   *ManifestPackage   `toml:"package"`
	Workspace *ManifestWorkspace `toml:"workspace"`
}

type ManifestPackage struct {
	Name string `toml:"name"`
}

type ManifestWorkspace struct {
	Members []string `toml:"members"`
}

// IsWorkspace reports whether the manifest declares a workspace section.
func (m *Manifest) IsWorkspace() bool {
	return m.Workspace != nil
}

// LoadManifest reads and parses the package manifest at <root>/Cargo.toml.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dmerrors.NewWorkspaceError(path, "read manifest: "+err.Error())
	}
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, dmerrors.NewWorkspaceError(path, "parse manifest: "+err.Error())
	}
	return &m, nil
}
