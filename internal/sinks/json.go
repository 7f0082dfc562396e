package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"

	"rockcoast/internal/sims/rockcoast"
)

// JSON emits newline-delimited snapshots.
type JSON struct {
	mu      sync.Mutex
	writer  *bufio.Writer
	encoder *json.Encoder
}

// NewJSON constructs a JSON sink writing to w.
func NewJSON(w io.Writer) *JSON {
	if w == nil {
		w = io.Discard
	}
	buf := bufio.NewWriter(w)
	return &JSON{writer: buf, encoder: json.NewEncoder(buf)}
}

// WriteSnapshot satisfies rockcoast.SnapshotSink.
func (s *JSON) WriteSnapshot(snap rockcoast.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.encoder.Encode(snap); err != nil {
		return err
	}
	return s.writer.Flush()
}

// Close flushes buffers.
func (s *JSON) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.Flush()
}
