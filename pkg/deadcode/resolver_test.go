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

import "testing"

func TestResolveCratePrefix(t *testing.T) {
	r := NewResolver()
	call := CallSite{QualifiedPath: "crate::utils::helper"}
	got := r.Resolve(call, []string{"widgets"}, nil)
	if got.ResolvedPath != "utils::helper" {
		t.Errorf("ResolvedPath = %q, want %q", got.ResolvedPath, "utils::helper")
	}
}

func TestResolveSelfPrefix(t *testing.T) {
	r := NewResolver()
	call := CallSite{QualifiedPath: "self::helper"}
	got := r.Resolve(call, []string{"widgets", "gear"}, nil)
	if got.ResolvedPath != "widgets::gear::helper" {
		t.Errorf("ResolvedPath = %q, want %q", got.ResolvedPath, "widgets::gear::helper")
	}
}

func TestResolveSuperPrefixWalksUpModuleStack(t *testing.T) {
	r := NewResolver()
	call := CallSite{QualifiedPath: "super::super::helper"}
	got := r.Resolve(call, []string{"a", "b", "c"}, nil)
	if got.ResolvedPath != "a::helper" {
		t.Errorf("ResolvedPath = %q, want %q", got.ResolvedPath, "a::helper")
	}
}

func TestResolveSuperPrefixPastCrateRootStaysAtRoot(t *testing.T) {
	r := NewResolver()
	call := CallSite{QualifiedPath: "super::super::helper"}
	got := r.Resolve(call, []string{"a"}, nil)
	if got.ResolvedPath != "helper" {
		t.Errorf("ResolvedPath = %q, want %q", got.ResolvedPath, "helper")
	}
}

// TestResolveAliasedImport covers the "aliased import" scenario: a
// `use other::thing as alias;` import must resolve alias::call() back to
// the real module path it stands for.
func TestResolveAliasedImport(t *testing.T) {
	r := NewResolver()
	call := CallSite{QualifiedPath: "alias::call"}
	imports := map[string]string{"alias": "other::thing"}
	got := r.Resolve(call, nil, imports)
	if got.ResolvedPath != "other::thing::call" {
		t.Errorf("ResolvedPath = %q, want %q", got.ResolvedPath, "other::thing::call")
	}
	if !got.ViaImport {
		t.Error("expected ViaImport to be true for an aliased call")
	}
}

// TestResolveUnaliasedNameIsLeftBareForSuffixMatching covers the
// "keyword-only import" scenario: a plain `use other::thing;` (no alias)
// leaves the resolver with nothing to substitute, so the function graph's
// suffix-matching stage is relied on instead.
func TestResolveUnaliasedNameIsLeftBareForSuffixMatching(t *testing.T) {
	r := NewResolver()
	call := CallSite{QualifiedPath: "thing::call"}
	got := r.Resolve(call, nil, map[string]string{})
	if got.ResolvedPath != "thing::call" {
		t.Errorf("ResolvedPath = %q, want %q", got.ResolvedPath, "thing::call")
	}
	if got.ViaImport {
		t.Error("expected ViaImport to be false when no alias matched")
	}
}

func TestResolveEmptyCallReturnsZeroValue(t *testing.T) {
	r := NewResolver()
	got := r.Resolve(CallSite{}, []string{"a"}, nil)
	if got.Original != "" || got.ResolvedPath != "" || got.Segments != nil || got.ViaImport {
		t.Errorf("expected zero-value ResolvedCall for an empty call site, got %+v", got)
	}
}
