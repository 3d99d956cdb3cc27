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
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/kraklabs/deadmod/internal/logging"
)

// maxFileSize rejects a file before parsing, per spec.md §4.3.
const maxFileSize = 10 * 1024 * 1024

// TreeSitterExtractor parses Rust source with Tree-sitter and fans the
// resulting AST out to the seven axis extractors. Parsers are pooled
// because a sitter.Parser is not goroutine-safe, mirroring the teacher's
// per-language sync.Pool in parser_treesitter.go.
type TreeSitterExtractor struct {
	pool sync.Pool
	sink *logging.Sink
}

// NewTreeSitterExtractor creates an extractor. sink may be nil.
func NewTreeSitterExtractor(sink *logging.Sink) *TreeSitterExtractor {
	e := &TreeSitterExtractor{sink: sink}
	e.pool.New = func() any {
		p := sitter.NewParser()
		p.SetLanguage(rust.GetLanguage())
		return p
	}
	return e
}

// ExtractFile parses one file's content and runs every axis extractor over
// the resulting tree. A parse error never aborts the batch: it returns
// FileFacts with ParseFailed set and an empty Module record, per spec.md
// §4.3's "never fail the pipeline" contract.
func (e *TreeSitterExtractor) ExtractFile(path string, content []byte, hash string, modulePath []string) *FileFacts {
	facts := newFileFacts(path, hash)

	if len(content) > maxFileSize {
		if e.sink != nil {
			e.sink.Warn("extract.file.too_large", "path", path, "size", len(content))
		}
		facts.ParseFailed = true
		facts.Module = &ModuleRecord{Name: moduleNameForFile(path), Path: path}
		return facts
	}

	parserObj := e.pool.Get()
	parser, ok := parserObj.(*sitter.Parser)
	if !ok {
		facts.ParseFailed = true
		return facts
	}
	defer e.pool.Put(parser)

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		if e.sink != nil {
			e.sink.Warn("extract.file.parse_error", "path", path, "err", err.Error())
		}
		facts.ParseFailed = true
		facts.Module = &ModuleRecord{Name: moduleNameForFile(path), Path: path}
		return facts
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		errCount := countErrorNodes(root)
		if errCount > 0 && e.sink != nil {
			e.sink.Warn("extract.file.syntax_errors", "path", path, "count", errCount)
		}
		// Tree-sitter is error-tolerant; continue extracting what parsed.
	}

	facts.ModulePath = append([]string(nil), modulePath...)
	facts.Module = &ModuleRecord{Name: moduleNameForFile(path), Path: path, Visibility: VisPrivate}
	stack := &pathStack{modules: append([]string(nil), modulePath...)}
	w := &walker{content: content, path: path, stack: stack, facts: facts}
	w.walkFile(root)
	return facts
}

func countErrorNodes(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Type() == "ERROR" {
		count++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		count += countErrorNodes(n.Child(i))
	}
	return count
}

func nodeText(content []byte, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(content[n.StartByte():n.EndByte()])
}

func moduleNameForFile(path string) string {
	base := path
	if idx := lastSlash(base); idx >= 0 {
		base = base[idx+1:]
	}
	return trimExt(base)
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
