package sinks

import (
	"fmt"
	"io"
	"sync"

	"github.com/guptarohit/asciigraph"

	"rockcoast/internal/render"
	"rockcoast/internal/sims/rockcoast"
)

// ASCII plots each snapshot as a terminal chart of the rock surface against
// the mean sea level.
type ASCII struct {
	mu     sync.Mutex
	w      io.Writer
	width  int
	height int
}

// NewASCII returns a terminal plot sink. Non-positive sizes fall back to a
// 72x16 chart.
func NewASCII(w io.Writer, width, height int) *ASCII {
	if width <= 0 {
		width = 72
	}
	if height <= 0 {
		height = 16
	}
	return &ASCII{w: w, width: width, height: height}
}

// Render returns the chart for snap without writing it.
func (s *ASCII) Render(snap rockcoast.Snapshot) string {
	v := render.FitView(snap.Z, snap.X, 0)
	surface := render.Surface(snap.Z, snap.X, v.MinX, v.MaxX, s.width)
	if len(surface) == 0 {
		return ""
	}
	sea := make([]float64, len(surface))
	for i := range sea {
		sea[i] = snap.SeaLevel
	}
	caption := fmt.Sprintf("t=%g  sea level %.2f m  x %.1f..%.1f m", snap.Time, snap.SeaLevel, v.MinX, v.MaxX)
	return asciigraph.PlotMany([][]float64{surface, sea},
		asciigraph.Height(s.height),
		asciigraph.Width(s.width),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

// WriteSnapshot satisfies rockcoast.SnapshotSink.
func (s *ASCII) WriteSnapshot(snap rockcoast.Snapshot) error {
	chart := s.Render(snap)
	if chart == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%s\n\n", chart)
	return err
}
