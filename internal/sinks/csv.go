package sinks

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	billy "gopkg.in/src-d/go-billy.v4"

	"rockcoast/internal/sims/rockcoast"
)

// CSV writes each snapshot to its own file, profile_<step>.csv, inside Dir.
type CSV struct {
	Filesystem billy.Filesystem
	Dir        string

	ready bool
}

// NewCSV returns a CSV sink rooted at dir on fs.
func NewCSV(fs billy.Filesystem, dir string) *CSV {
	return &CSV{Filesystem: fs, Dir: dir}
}

// FileName returns the file a snapshot taken at step is written to.
func (s *CSV) FileName(step int) string {
	return s.Filesystem.Join(s.Dir, fmt.Sprintf("profile_%06d.csv", step))
}

// WriteSnapshot satisfies rockcoast.SnapshotSink.
func (s *CSV) WriteSnapshot(snap rockcoast.Snapshot) (err error) {
	if !s.ready && s.Dir != "" {
		if err := s.Filesystem.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", s.Dir, err)
		}
		s.ready = true
	}

	name := s.FileName(snap.Step)
	f, err := s.Filesystem.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	w := csv.NewWriter(f)
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	if err := w.Write([]string{"time", "sea_level", "z", "x"}); err != nil {
		return err
	}
	for i := range snap.Z {
		rec := []string{format(snap.Time), format(snap.SeaLevel), format(snap.Z[i]), format(snap.X[i])}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Close satisfies Closer.
func (s *CSV) Close(context.Context) error { return nil }
