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
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// visitMatchExpression records one MatchArmRecord per arm. It does not
// control recursion itself: the caller (walker.visit) falls through to its
// normal child recursion afterward, so each arm's value expression still
// gets walked for call/identifier usage as if it were ordinary code.
func (w *walker) visitMatchExpression(n *sitter.Node) {
	body := n.ChildByFieldName("body")
	if body == nil {
		body = childByType(n, "match_block")
	}
	if body == nil {
		return
	}
	var arms []*sitter.Node
	for i := 0; i < int(body.ChildCount()); i++ {
		if c := body.Child(i); c.Type() == "match_arm" {
			arms = append(arms, c)
		}
	}
	w.matchCounter++
	matchID := w.matchCounter
	total := len(arms)
	for pos, arm := range arms {
		patNode := arm.ChildByFieldName("pattern")
		patText := ""
		if patNode != nil {
			patText = strings.TrimSpace(w.text(patNode))
		}
		w.facts.MatchArms = append(w.facts.MatchArms, MatchArmRecord{
			Pattern:     patText,
			VariantName: extractPatternVariant(patText),
			IsWildcard:  isWildcardPattern(patText),
			Position:    pos,
			TotalArms:   total,
			File:        w.path,
			MatchID:     matchID,
		})
	}
}

func isWildcardPattern(pat string) bool {
	for _, alt := range strings.Split(pat, "|") {
		if strings.TrimSpace(alt) == "_" {
			return true
		}
	}
	return false
}

// extractPatternVariant pulls the leaf variant name out of a pattern like
// "Shape::Circle(r)" or bare "Circle(r)" when Circle is in scope via an
// enum import; alternation patterns ("A | B") only consider the first arm.
func extractPatternVariant(pat string) string {
	first := pat
	if idx := strings.IndexByte(pat, '|'); idx >= 0 {
		first = pat[:idx]
	}
	first = strings.TrimSpace(first)
	if idx := strings.IndexAny(first, "({["); idx >= 0 {
		first = first[:idx]
	}
	first = strings.TrimSpace(first)
	if first == "" || first == "_" {
		return ""
	}
	if idx := strings.LastIndex(first, "::"); idx >= 0 {
		first = first[idx+2:]
	}
	if first == "" {
		return ""
	}
	if first[0] >= 'A' && first[0] <= 'Z' {
		return first
	}
	return ""
}
