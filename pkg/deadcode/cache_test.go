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
	"testing"
)

// TestCacheRoundTrip covers the "cache round-trip" scenario: facts saved
// for a file are returned unchanged on the next load, keyed by content
// hash, with no re-extraction required.
func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".deadmod-cache.json")
	c := NewCache(path, "0.1.0", nil)

	content := []byte("fn main() {}")
	hash := HashContent(content)
	facts := newFileFacts("src/main.rs", hash)
	facts.Functions = []FunctionRecord{{Name: "main", FullPath: "main"}}

	cf := &CacheFile{Entries: map[string]*CacheEntry{
		"src/main.rs": {ContentHash: hash, Facts: facts},
	}}
	if err := c.Save(cf); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := c.Load()
	entry, ok := loaded.Entries["src/main.rs"]
	if !ok {
		t.Fatal("expected src/main.rs entry to survive the round trip")
	}
	if entry.ContentHash != hash {
		t.Errorf("ContentHash = %q, want %q", entry.ContentHash, hash)
	}
	if len(entry.Facts.Functions) != 1 || entry.Facts.Functions[0].Name != "main" {
		t.Errorf("Facts.Functions = %+v, want one 'main' function", entry.Facts.Functions)
	}
}

func TestCacheLoadMissingFileReturnsEmpty(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "missing.json"), "0.1.0", nil)
	cf := c.Load()
	if len(cf.Entries) != 0 {
		t.Errorf("expected an empty cache for a missing file, got %d entries", len(cf.Entries))
	}
}

func TestCacheLoadCorruptFileFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".deadmod-cache.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewCache(path, "0.1.0", nil)
	cf := c.Load()
	if len(cf.Entries) != 0 {
		t.Errorf("expected an empty cache for a corrupt file, got %d entries", len(cf.Entries))
	}
}

func TestCacheLoadToolVersionMismatchDiscardsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".deadmod-cache.json")
	old := NewCache(path, "0.0.1", nil)
	if err := old.Save(&CacheFile{Entries: map[string]*CacheEntry{
		"src/main.rs": {ContentHash: "x", Facts: newFileFacts("src/main.rs", "x")},
	}}); err != nil {
		t.Fatal(err)
	}

	upgraded := NewCache(path, "0.1.0", nil)
	cf := upgraded.Load()
	if len(cf.Entries) != 0 {
		t.Errorf("expected a tool-version bump to invalidate the whole cache, got %d entries", len(cf.Entries))
	}
}

func TestHashContentIsDeterministicAndContentSensitive(t *testing.T) {
	a := HashContent([]byte("fn a() {}"))
	b := HashContent([]byte("fn a() {}"))
	c := HashContent([]byte("fn b() {}"))
	if a != b {
		t.Error("expected identical content to hash identically")
	}
	if a == c {
		t.Error("expected different content to hash differently")
	}
}
