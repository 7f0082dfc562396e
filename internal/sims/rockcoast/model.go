package rockcoast

import (
	"fmt"
	"io"
	"log/slog"

	"rockcoast/internal/core"
)

// Diagnostics counts notable events over a run.
type Diagnostics struct {
	Steps            int
	ErosionEvents    int
	CollapsedRows    int
	BreakingFailures int
	Uplifts          int
	Snapshots        int
	SinkErrors       int
}

// Model is the rock coast simulation: the profile, the per-row resistance and
// the forcing clocks, advanced one timestep at a time.
type Model struct {
	cfg Config
	log *slog.Logger

	snapshots SnapshotSink
	progress  ProgressSink

	profile    *core.Profile
	initialX   []float64
	resistance []float64
	weathering []float64
	tides      []float64
	force      []float64

	step         int
	time         float64
	seaLevel     float64
	nextQuake    float64
	nextSnapshot float64
	low, high    int

	diag  Diagnostics
	ready bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger routes model diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithSnapshotSink registers the receiver of periodic snapshots.
func WithSnapshotSink(s SnapshotSink) Option {
	return func(m *Model) { m.snapshots = s }
}

// WithProgressSink registers the receiver of per-step progress.
func WithProgressSink(p ProgressSink) Option {
	return func(m *Model) { m.progress = p }
}

// New returns a model for cfg. Call Reset (or Run) before stepping.
func New(cfg Config, opts ...Option) *Model {
	m := &Model{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the model identifier.
func (m *Model) Name() string { return "rockcoast" }

// Config returns the configuration the model was built with.
func (m *Model) Config() Config { return m.cfg }

// Profile exposes the live profile. Callers must treat it as read-only.
func (m *Model) Profile() *core.Profile { return m.profile }

// Resistance exposes the live per-row resistance.
func (m *Model) Resistance() []float64 { return m.resistance }

// Weathering exposes the intertidal weathering rates, low tide first.
func (m *Model) Weathering() []float64 { return m.weathering }

// TideLevels exposes the tidal offsets sampled every step.
func (m *Model) TideLevels() []float64 { return m.tides }

// Time returns the current simulation time.
func (m *Model) Time() float64 { return m.time }

// SeaLevel returns the current mean sea level.
func (m *Model) SeaLevel() float64 { return m.seaLevel }

// TidalRange returns the configured tidal range.
func (m *Model) TidalRange() float64 { return m.cfg.TidalRange }

// NextEarthquake returns the scheduled time of the next uplift check.
func (m *Model) NextEarthquake() float64 { return m.nextQuake }

// TidalWindow returns the low- and high-tide rows used by the last step.
func (m *Model) TidalWindow() (low, high int) { return m.low, m.high }

// Diagnostics returns the counters accumulated since the last Reset.
func (m *Model) Diagnostics() Diagnostics { return m.diag }

// Done reports whether the run has passed its end time.
func (m *Model) Done() bool { return !m.ready || m.time > m.cfg.EndTime }

// Retreat returns how far each row has moved landward since Reset.
func (m *Model) Retreat() []float64 {
	if m.profile == nil {
		return nil
	}
	out := make([]float64, m.profile.Len())
	for i := range out {
		out[i] = m.profile.X[i] - m.initialX[i]
	}
	return out
}

// Reset validates the configuration and rebuilds the profile, resistance and
// clocks from it. On error the model keeps no usable state.
func (m *Model) Reset() error {
	m.ready = false
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	cfg := m.cfg

	m.profile = core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)
	n := m.profile.Len()
	if n < 2 {
		return &ConfigError{Field: "dz", Value: fmt.Sprint(cfg.Dz), Reason: "profile needs at least two rows"}
	}
	m.initialX = append(m.initialX[:0], m.profile.X...)
	m.resistance = make([]float64, n)
	for i := range m.resistance {
		m.resistance[i] = cfg.MaxResistance
	}
	m.force = make([]float64, n)
	m.weathering = WeatheringProfile(cfg.TidalRange, cfg.Dz, cfg.MaxWeatheringEfficacy)
	m.tides = TideLevels(cfg.TidalRange, cfg.TideSampleInterval)

	m.step = 0
	m.time = cfg.Time
	m.seaLevel = cfg.SeaLevel
	m.nextQuake = cfg.EarthquakeTime
	m.nextSnapshot = cfg.Time
	m.low, m.high = m.tidalWindow()
	m.diag = Diagnostics{}
	m.ready = true

	m.log.Debug("reset", "rows", n, "tide_samples", len(m.tides), "weathering_rows", len(m.weathering))
	return nil
}

func (m *Model) tidalWindow() (low, high int) {
	half := 0.5 * m.cfg.TidalRange
	return m.profile.NearestIndex(m.seaLevel - half), m.profile.NearestIndex(m.seaLevel + half)
}

// Step advances the model by one timestep. It reports false without changing
// anything once the end time has been passed or before Reset.
func (m *Model) Step() bool {
	if m.Done() {
		return false
	}

	m.low, m.high = m.tidalWindow()

	failures := waveForce(m.force, m.profile, m.seaLevel, m.tides, m.high, &m.cfg)
	if failures > 0 {
		m.diag.BreakingFailures += failures
		m.log.Debug("breaking point outside profile", "time", m.time, "samples", failures, "sea_level", m.seaLevel)
	}

	m.weather(m.low, m.high)
	m.diag.ErosionEvents += m.erode()
	m.diag.CollapsedRows += collapse(m.profile, m.low, m.high)

	if m.time >= m.nextSnapshot {
		m.emitSnapshot()
		m.nextSnapshot += m.cfg.PlotInterval
	}

	m.advance()
	m.step++
	m.diag.Steps++

	if m.progress != nil {
		m.progress.Progress(m.time)
	}
	return true
}

// Run resets the model and steps it until the end time has been passed.
func (m *Model) Run() error {
	if err := m.Reset(); err != nil {
		return err
	}
	for m.Step() {
	}
	d := m.diag
	if d.BreakingFailures > 0 {
		m.log.Warn("tide samples without a breaking point", "samples", d.BreakingFailures, "steps", d.Steps)
	}
	m.log.Info("run complete",
		"time", m.time,
		"sea_level", m.seaLevel,
		"steps", d.Steps,
		"erosion_events", d.ErosionEvents,
		"uplifts", d.Uplifts,
		"snapshots", d.Snapshots,
	)
	return nil
}

// Snapshot returns a detached copy of the current state.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Step:       m.step,
		Time:       m.time,
		SeaLevel:   m.seaLevel,
		TidalRange: m.cfg.TidalRange,
	}
	if m.profile != nil {
		c := m.profile.Clone()
		s.Z, s.X = c.Z, c.X
	}
	return s
}

func (m *Model) emitSnapshot() {
	if m.snapshots == nil {
		return
	}
	snap := m.Snapshot()
	m.diag.Snapshots++
	defer func() {
		if r := recover(); r != nil {
			m.diag.SinkErrors++
			m.log.Error("snapshot sink panicked", "time", snap.Time, "panic", r)
		}
	}()
	if err := m.snapshots.WriteSnapshot(snap); err != nil {
		m.diag.SinkErrors++
		m.log.Error("snapshot sink failed", "time", snap.Time, "err", err)
	}
}

func init() {
	core.Register("rockcoast", func(kv map[string]string) (core.Model, error) {
		cfg, err := FromMap(kv)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
