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

// Package metrics exposes optional Prometheus instrumentation for a
// deadmod analysis run: scan duration, cache hit rate, and dead-set sizes
// per axis. pkg/deadcode records into these collectors on every analysis;
// the CLI shell registers and serves them only when --metrics-addr is set.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "deadmod",
		Name:      "scan_duration_seconds",
		Help:      "Time spent walking the source tree.",
	})

	ExtractDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "deadmod",
		Name:      "extract_duration_seconds",
		Help:      "Time spent parsing and extracting facts from all files.",
	})

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "deadmod",
		Name:      "cache_hits_total",
		Help:      "Number of files whose content hash matched the cache.",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "deadmod",
		Name:      "cache_misses_total",
		Help:      "Number of files re-extracted because the cache missed.",
	})

	DeadCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "deadmod",
		Name:      "dead_items",
		Help:      "Number of dead items found, labeled by axis.",
	}, []string{"axis"})

	FilesDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "deadmod",
		Name:      "files_dropped_total",
		Help:      "Number of files dropped from a run after a panic or parse failure.",
	})
)

// Register bundles deadmod's collectors for registration with an
// http.Handler (promhttp.HandlerFor) or the default global registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(ScanDuration, ExtractDuration, CacheHits, CacheMisses, DeadCount, FilesDropped)
}
