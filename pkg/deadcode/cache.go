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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	dmerrors "github.com/kraklabs/deadmod/internal/errors"
	"github.com/kraklabs/deadmod/internal/logging"
)

// cacheFormatVersion is bumped whenever FileFacts' shape changes in a way
// that makes an older cache file unsafe to trust.
const cacheFormatVersion = 1

// maxCacheFileSize rejects a cache file before parsing it, the same kind of
// defensive cap the extractor applies to source files (maxFileSize, 10 MB).
const maxCacheFileSize = 50 * 1024 * 1024

// CacheFile is the on-disk JSON document at <root>/.deadmod-cache.json
// (spec.md §6): a version/tool-version gate plus one entry per source file.
type CacheFile struct {
	Version     int                    `json:"version"`
	ToolVersion string                 `json:"tool_version"`
	Entries     map[string]*CacheEntry `json:"entries"`
}

// CacheEntry pairs a file's content hash with its previously extracted
// facts, so an unchanged file never needs reparsing.
type CacheEntry struct {
	ContentHash string     `json:"content_hash"`
	Facts       *FileFacts `json:"facts"`
}

// Cache owns the on-disk cache file and the parallel extraction pass that
// fills it in. Path is absolute.
type Cache struct {
	Path        string
	ToolVersion string
	sink        *logging.Sink
}

func NewCache(path, toolVersion string, sink *logging.Sink) *Cache {
	return &Cache{Path: path, ToolVersion: toolVersion, sink: sink}
}

// Load reads the cache file. A missing file, a corrupt file, an oversized
// file, or a version/tool-version mismatch are all treated the same way:
// start from an empty cache rather than failing the run, per spec.md §7's
// Cache error kind being recoverable.
func (c *Cache) Load() *CacheFile {
	empty := &CacheFile{Version: cacheFormatVersion, ToolVersion: c.ToolVersion, Entries: make(map[string]*CacheEntry)}

	info, err := os.Stat(c.Path)
	if err != nil {
		return empty
	}
	if info.Size() > maxCacheFileSize {
		if c.sink != nil {
			c.sink.Warn("cache.load.too_large", "path", c.Path, "size", info.Size())
		}
		return empty
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if c.sink != nil {
			c.sink.Warn("cache.load.read_error", "path", c.Path, "err", err.Error())
		}
		return empty
	}
	var cf CacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		if c.sink != nil {
			c.sink.Warn("cache.load.parse_error", "path", c.Path, "err", err.Error())
		}
		return empty
	}
	if cf.Version != cacheFormatVersion || cf.ToolVersion != c.ToolVersion {
		if c.sink != nil {
			c.sink.Info("cache.load.stale", "path", c.Path, "cached_version", cf.ToolVersion, "current_version", c.ToolVersion)
		}
		return empty
	}
	if cf.Entries == nil {
		cf.Entries = make(map[string]*CacheEntry)
	}
	return &cf
}

// Save writes cf atomically: a temp file in the same directory followed by
// a rename, so a crash mid-write never leaves a half-written cache behind.
func (c *Cache) Save(cf *CacheFile) error {
	cf.Version = cacheFormatVersion
	cf.ToolVersion = c.ToolVersion

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return dmerrors.NewCacheError(fmt.Sprintf("marshal cache %s", c.Path), err)
	}

	dir := filepath.Dir(c.Path)
	tmp, err := os.CreateTemp(dir, ".deadmod-cache-*.tmp")
	if err != nil {
		return dmerrors.NewCacheError(fmt.Sprintf("create temp cache file for %s", c.Path), err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return dmerrors.NewCacheError(fmt.Sprintf("write temp cache file for %s", c.Path), err)
	}
	if err := tmp.Close(); err != nil {
		return dmerrors.NewCacheError(fmt.Sprintf("close temp cache file for %s", c.Path), err)
	}
	if err := os.Rename(tmpPath, c.Path); err != nil {
		return dmerrors.NewCacheError(fmt.Sprintf("rename temp cache file for %s", c.Path), err)
	}
	return nil
}

// HashContent returns the hex SHA-256 digest of content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ExtractionStats reports what the parallel extraction pass did, for the
// scan summary and for --metrics.
type ExtractionStats struct {
	CacheHits   int
	CacheMisses int
	FilesFailed int
}

// ExtractAll reads and extracts every file in paths, reusing cached facts
// for any file whose content hash is unchanged. Extraction runs across a
// small hand-rolled worker pool (jobs channel, sync.WaitGroup, atomic
// counters), mirroring parseFilesParallel in the teacher's local ingestion
// pipeline; each worker recovers from a panic in a single file's extraction
// so one malformed file never takes down the whole batch.
func (c *Cache) ExtractAll(paths []string, extractor *TreeSitterExtractor, modulePathFor func(string) []string, workers int) ([]*FileFacts, *ExtractionStats, *CacheFile) {
	return c.extractAllAgainst(c.Load(), paths, extractor, modulePathFor, workers)
}

// extractAllAgainst runs the worker pool against an explicit baseline
// cache rather than c's own on-disk file, so a no-cache run can reuse the
// same parallel extraction path with an empty baseline instead of
// duplicating the pool logic.
func (c *Cache) extractAllAgainst(existing *CacheFile, paths []string, extractor *TreeSitterExtractor, modulePathFor func(string) []string, workers int) ([]*FileFacts, *ExtractionStats, *CacheFile) {
	stats := &ExtractionStats{}
	out := make([]*FileFacts, len(paths))

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if len(paths) < 8 {
		workers = 1
	}

	jobs := make(chan int, len(paths))
	var wg sync.WaitGroup
	var hits, misses, failed int64

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			out[i] = c.extractOne(paths[i], existing, extractor, modulePathFor, &hits, &misses, &failed)
		}
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	stats.CacheHits = int(atomic.LoadInt64(&hits))
	stats.CacheMisses = int(atomic.LoadInt64(&misses))
	stats.FilesFailed = int(atomic.LoadInt64(&failed))

	fresh := &CacheFile{Version: cacheFormatVersion, ToolVersion: c.ToolVersion, Entries: make(map[string]*CacheEntry, len(paths))}
	for i, facts := range out {
		if facts == nil {
			continue
		}
		fresh.Entries[paths[i]] = &CacheEntry{ContentHash: facts.ContentHash, Facts: facts}
	}
	return out, stats, fresh
}

func (c *Cache) extractOne(path string, existing *CacheFile, extractor *TreeSitterExtractor, modulePathFor func(string) []string, hits, misses, failed *int64) (facts *FileFacts) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(failed, 1)
			if c.sink != nil {
				c.sink.Warn("cache.extract.panic", "path", path, "recovered", fmt.Sprintf("%v", r))
			}
			facts = newFileFacts(path, "")
			facts.ParseFailed = true
		}
	}()

	content, err := os.ReadFile(path)
	if err != nil {
		atomic.AddInt64(failed, 1)
		if c.sink != nil {
			c.sink.Warn("cache.extract.read_error", "path", path, "err", err.Error())
		}
		f := newFileFacts(path, "")
		f.ParseFailed = true
		return f
	}

	hash := HashContent(content)
	if entry, ok := existing.Entries[path]; ok && entry.ContentHash == hash && entry.Facts != nil {
		atomic.AddInt64(hits, 1)
		return entry.Facts
	}

	atomic.AddInt64(misses, 1)
	return extractor.ExtractFile(path, content, hash, modulePathFor(path))
}
