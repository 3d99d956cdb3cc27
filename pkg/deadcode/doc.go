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

// Package deadcode implements the multi-axis dead-code reachability engine:
// a content-addressed cache over a parallel scanner, seven Tree-sitter AST
// extractors producing typed fact tables, a path resolver that lifts
// syntactic calls to fully-qualified identifiers, and eight reachability
// graphs (module, function, trait, generic, macro, constant, enum,
// match-arm) that each report their axis's dead set.
//
// Analyze is the package's single entry point for one source package;
// AnalyzeWorkspace composes it across a workspace's member packages.
package deadcode
