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
	"fmt"
	"sort"
)

// MatchArmKey identifies one arm for the match axis's node/root set and for
// matchArmReasons' lookup.
func MatchArmKey(file string, matchID, position int) string {
	return fmt.Sprintf("%s#%d#%d", file, matchID, position)
}

// BuildMatchGraph builds the match-arm axis's graph. There is no multi-hop
// reachability here: an arm is either reachable (it can be the first
// pattern in its match to match some value) or it isn't, decided purely by
// position within its own match expression. Wrapping that verdict in a
// Graph keeps every axis's report computed the same way (Dead(g, roots)).
func BuildMatchGraph(files []*FileFacts) (*Graph, []string) {
	g := NewGraph()
	var roots []string
	for _, f := range files {
		for _, arm := range f.MatchArms {
			key := MatchArmKey(f.Path, arm.MatchID, arm.Position)
			g.AddNode(key)
		}
	}
	reasons := matchArmReasons(files)
	for node := range g.Nodes {
		reason, flagged := reasons[node]
		// ReasonNonFinalWildcard marks a wildcard arm as a smell, not as
		// dead: the arm itself still matches values, it just risks masking
		// whatever comes after it (those arms get their own MaskedByWildcard
		// entry if so).
		if !flagged || reason == ReasonNonFinalWildcard {
			roots = append(roots, node)
		}
	}
	return g, roots
}

type matchGroup struct {
	file    string
	matchID int
	arms    []MatchArmRecord
}

// matchArmReasons classifies every unreachable arm across every match
// expression: a second wildcard, any arm positioned after the first
// wildcard, or a pattern that textually repeats one already seen earlier in
// the same match.
func matchArmReasons(files []*FileFacts) map[string]MatchArmReason {
	groups := make(map[string]*matchGroup)
	var order []string
	for _, f := range files {
		for _, arm := range f.MatchArms {
			gk := fmt.Sprintf("%s#%d", f.Path, arm.MatchID)
			grp, ok := groups[gk]
			if !ok {
				grp = &matchGroup{file: f.Path, matchID: arm.MatchID}
				groups[gk] = grp
				order = append(order, gk)
			}
			grp.arms = append(grp.arms, arm)
		}
	}

	reasons := make(map[string]MatchArmReason)
	for _, gk := range order {
		grp := groups[gk]
		sort.Slice(grp.arms, func(i, j int) bool { return grp.arms[i].Position < grp.arms[j].Position })

		wildcardSeen := false
		seenPatterns := make(map[string]bool)
		for i, arm := range grp.arms {
			key := MatchArmKey(grp.file, grp.matchID, arm.Position)
			switch {
			case wildcardSeen:
				reasons[key] = ReasonMaskedByWildcard
			case seenPatterns[arm.Pattern]:
				reasons[key] = ReasonNeverUsed
			case arm.IsWildcard:
				wildcardSeen = true
				if i != len(grp.arms)-1 {
					reasons[key] = ReasonNonFinalWildcard
				}
			}
			if arm.Pattern != "" {
				seenPatterns[arm.Pattern] = true
			}
		}
	}
	return reasons
}
