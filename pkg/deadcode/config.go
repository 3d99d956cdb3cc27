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
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the optional <root>/deadmod.toml (spec.md §6). A malformed
// config is a recoverable error: callers fall back to DefaultConfig().
type Config struct {
	Ignore []string     `toml:"ignore"`
	Output OutputConfig `toml:"output"`
}

type OutputConfig struct {
	Format string `toml:"format"` // "plain" | "json"
}

// DefaultConfig returns the config used when no deadmod.toml is present or
// it fails to parse.
func DefaultConfig() *Config {
	return &Config{Output: OutputConfig{Format: "plain"}}
}

// LoadConfig reads <root>/deadmod.toml. Per spec.md §7, Config errors are
// always recoverable: a missing or unreadable file returns DefaultConfig()
// and a nil error; a file that fails to parse returns DefaultConfig() and a
// non-nil error the caller may log as a warning.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, "deadmod.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), nil // absent config is not an error at all
	}
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "plain"
	}
	return &cfg, nil
}

// Matches reports whether name satisfies one of cfg.Ignore's patterns:
// exact equality, prefix-star ("foo*"), suffix-star ("*foo"), or substring
// containment (spec.md §6).
func (cfg *Config) Matches(name string) bool {
	for _, pattern := range cfg.Ignore {
		if matchIgnorePattern(pattern, name) {
			return true
		}
	}
	return false
}

func matchIgnorePattern(pattern, name string) bool {
	switch {
	case pattern == name:
		return true
	case strings.HasSuffix(pattern, "*") && strings.HasPrefix(name, strings.TrimSuffix(pattern, "*")):
		return true
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(name, strings.TrimPrefix(pattern, "*")):
		return true
	case strings.Contains(name, pattern):
		return true
	default:
		return false
	}
}

// FilterDead removes ignored names from a sorted dead-module list,
// preserving order.
func (cfg *Config) FilterDead(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !cfg.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}
