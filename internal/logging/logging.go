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

// Package logging provides deadmod's non-blocking structured event sink.
// Extractors, the cache, and the reachability graphs emit warnings from
// many concurrent goroutines; Emit never blocks the caller on slow I/O —
// events are pushed onto a buffered channel drained by a single background
// goroutine into a slog.Logger, matching the event-name convention used
// throughout the ingestion layer (dotted, lowercase, e.g.
// "scan.dir.pruned", "cache.load.stale").
package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Event is one structured log event.
type Event struct {
	Level slog.Level
	Name  string
	Args  []any
}

// Sink drains events into a slog.Logger on a single background goroutine.
type Sink struct {
	logger *slog.Logger
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// defaultCapacity is the event channel's buffer size. An event emitted while
// the channel is full is discarded (and not counted), so a runaway producer
// degrades rather than deadlocks the pipeline.
var defaultCapacity = 4096

// NewSink starts a background drain goroutine writing to logger. If logger
// is nil, slog.Default() is used.
func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sink{
		logger: logger,
		events: make(chan Event, defaultCapacity),
		done:   make(chan struct{}),
	}
	go s.drain()
	return s
}

func (s *Sink) drain() {
	defer close(s.done)
	for ev := range s.events {
		s.logger.Log(context.Background(), ev.Level, ev.Name, ev.Args...)
	}
}

// Emit pushes an event without blocking; a full buffer drops the event
// rather than stalling the caller (a worker goroutine mid-extraction).
func (s *Sink) Emit(level slog.Level, name string, args ...any) {
	select {
	case s.events <- Event{Level: level, Name: name, Args: args}:
	default:
	}
}

func (s *Sink) Warn(name string, args ...any)  { s.Emit(slog.LevelWarn, name, args...) }
func (s *Sink) Info(name string, args ...any)  { s.Emit(slog.LevelInfo, name, args...) }
func (s *Sink) Debug(name string, args ...any) { s.Emit(slog.LevelDebug, name, args...) }
func (s *Sink) Error(name string, args ...any) { s.Emit(slog.LevelError, name, args...) }

// Close stops accepting events and blocks until the drain goroutine has
// flushed everything already buffered.
func (s *Sink) Close() {
	s.once.Do(func() {
		close(s.events)
	})
	<-s.done
}
