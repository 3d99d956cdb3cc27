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
	"io"

	"gopkg.in/yaml.v3"
)

// OutputFormat is the CLI's rendering mode. "plain" and "json" are the
// formats deadmod.toml itself can declare (pkg/deadcode/config.go);
// "yaml" is an additional CLI-only convenience this shell layers on top,
// never a replacement for those two.
type OutputFormat string

const (
	FormatPlain OutputFormat = "plain"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

func parseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatPlain, FormatJSON, FormatYAML:
		return OutputFormat(s), nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown --format %q (want plain, json, or yaml)", s)
	}
}

// renderStructured writes v as JSON or YAML to w, for any --format other
// than "plain" (plain rendering is format-specific and lives alongside
// each subcommand's own report printer).
func renderStructured(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
