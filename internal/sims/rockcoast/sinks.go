package rockcoast

// Snapshot is a detached copy of the profile handed to renderers.
type Snapshot struct {
	Step       int       `json:"step"`
	Time       float64   `json:"time"`
	SeaLevel   float64   `json:"seaLevel"`
	TidalRange float64   `json:"tidalRange"`
	Z          []float64 `json:"z"`
	X          []float64 `json:"x"`
}

// SnapshotSink receives periodic profile snapshots. Errors are logged by the
// model and never interrupt the run.
type SnapshotSink interface {
	WriteSnapshot(Snapshot) error
}

// SnapshotFunc adapts a function to SnapshotSink.
type SnapshotFunc func(Snapshot) error

// WriteSnapshot calls f.
func (f SnapshotFunc) WriteSnapshot(s Snapshot) error {
	if f == nil {
		return nil
	}
	return f(s)
}

// ProgressSink receives the simulation time after every step.
type ProgressSink interface {
	Progress(time float64)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(time float64)

// Progress calls f.
func (f ProgressFunc) Progress(time float64) {
	if f != nil {
		f(time)
	}
}
