// Package sinks provides snapshot and progress receivers for rockcoast runs:
// in-memory capture, terminal plots, CSV files, a SQLite archive and a
// websocket stream.
package sinks

import (
	"context"
	"errors"
	"sync"

	"rockcoast/internal/sims/rockcoast"
)

// Memory keeps every snapshot it receives.
type Memory struct {
	mu    sync.RWMutex
	snaps []rockcoast.Snapshot
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{snaps: make([]rockcoast.Snapshot, 0)}
}

// WriteSnapshot satisfies rockcoast.SnapshotSink.
func (s *Memory) WriteSnapshot(snap rockcoast.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	return nil
}

// Snapshots returns the captured snapshots in arrival order.
func (s *Memory) Snapshots() []rockcoast.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]rockcoast.Snapshot, len(s.snaps))
	copy(copied, s.snaps)
	return copied
}

// Last returns the most recent snapshot.
func (s *Memory) Last() (rockcoast.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.snaps) == 0 {
		return rockcoast.Snapshot{}, false
	}
	return s.snaps[len(s.snaps)-1], true
}

// Reset drops the captured snapshots.
func (s *Memory) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = s.snaps[:0]
}

// Close satisfies Closer.
func (s *Memory) Close(context.Context) error {
	return nil
}

// Closer is implemented by sinks holding files, connections or databases.
type Closer interface {
	Close(context.Context) error
}

// Fanout forwards each snapshot to every sink in order. All sinks are called
// even when an earlier one fails; the failures are joined.
type Fanout []rockcoast.SnapshotSink

// WriteSnapshot satisfies rockcoast.SnapshotSink.
func (f Fanout) WriteSnapshot(snap rockcoast.Snapshot) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.WriteSnapshot(snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink implementing Closer.
func (f Fanout) Close(ctx context.Context) error {
	var errs []error
	for _, s := range f {
		if c, ok := s.(Closer); ok {
			if err := c.Close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
