package rockcoast

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockcoast/internal/core"
)

func nan() float64 { return math.NaN() }

func shortConfig() Config {
	cfg := DefaultConfig()
	cfg.EndTime = 200
	cfg.PlotInterval = 50
	return cfg
}

func runToEnd(t *testing.T, cfg Config, opts ...Option) *Model {
	t.Helper()
	m := New(cfg, opts...)
	require.NoError(t, m.Run())
	return m
}

func retreatAt(m *Model, z float64) float64 {
	return m.Retreat()[m.Profile().NearestIndex(z)]
}

func TestStepBeforeResetDoesNothing(t *testing.T) {
	m := New(DefaultConfig())
	assert.False(t, m.Step())
	assert.True(t, m.Done())
	assert.Nil(t, m.Retreat())
}

func TestResetRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dz = 0
	m := New(cfg)

	err := m.Run()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.False(t, m.Step())
}

func TestResetRejectsSingleRowProfile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZMin, cfg.ZMax = 0, 1
	cfg.Dz = 5
	cfg.TidalRange = 1

	err := New(cfg).Reset()

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "dz", cerr.Field)
}

func TestResetInitialState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeaLevel = 0.5
	cfg.Time = 10
	m := newResetModel(t, cfg)

	assert.Equal(t, 301, m.Profile().Len())
	assert.Equal(t, 10.0, m.Time())
	assert.Equal(t, 0.5, m.SeaLevel())
	assert.Equal(t, cfg.EarthquakeTime, m.NextEarthquake())
	assert.Len(t, m.TideLevels(), 24)
	assert.Len(t, m.Weathering(), 21)
	for _, r := range m.Resistance() {
		require.Equal(t, cfg.MaxResistance, r)
	}
	for _, r := range m.Retreat() {
		require.Zero(t, r)
	}
	low, high := m.TidalWindow()
	assert.InDelta(t, -0.5, m.Profile().Z[low], 1e-9)
	assert.InDelta(t, 1.5, m.Profile().Z[high], 1e-9)
}

func TestResetTwiceGivesIdenticalState(t *testing.T) {
	m := newResetModel(t, DefaultConfig())
	profile := m.Profile().Clone()
	resistance := append([]float64(nil), m.Resistance()...)

	require.NoError(t, m.Reset())

	assert.Equal(t, profile, m.Profile())
	assert.Equal(t, resistance, m.Resistance())
	assert.Equal(t, DefaultConfig().Time, m.Time())
	assert.Equal(t, Diagnostics{}, m.Diagnostics())
}

func TestResetAfterSteppingRestoresInitialState(t *testing.T) {
	m := newResetModel(t, DefaultConfig())
	profile := m.Profile().Clone()
	resistance := append([]float64(nil), m.Resistance()...)
	for i := 0; i < 50; i++ {
		require.True(t, m.Step())
	}

	require.NoError(t, m.Reset())

	assert.Equal(t, profile, m.Profile())
	assert.Equal(t, resistance, m.Resistance())
}

func TestResetIsIdempotent(t *testing.T) {
	cfg := shortConfig()
	m := runToEnd(t, cfg)
	first := m.Snapshot()
	firstDiag := m.Diagnostics()

	require.NoError(t, m.Run())

	assert.Equal(t, first, m.Snapshot())
	assert.Equal(t, firstDiag, m.Diagnostics())
}

func TestRunStepsThroughEndTimeInclusive(t *testing.T) {
	m := runToEnd(t, shortConfig())

	d := m.Diagnostics()
	assert.Equal(t, 201, d.Steps)
	assert.Equal(t, 201.0, m.Time())
	assert.True(t, m.Done())
	assert.False(t, m.Step())
	assert.Equal(t, 201, m.Diagnostics().Steps)
}

func TestSnapshotSchedule(t *testing.T) {
	var times []float64
	sink := SnapshotFunc(func(s Snapshot) error {
		times = append(times, s.Time)
		return nil
	})

	m := runToEnd(t, DefaultConfig(), WithSnapshotSink(sink))

	assert.Equal(t, []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}, times)
	assert.Equal(t, 11, m.Diagnostics().Snapshots)
}

func TestSinkFailuresDoNotChangeTheRun(t *testing.T) {
	cfg := shortConfig()
	want := runToEnd(t, cfg).Snapshot()

	sinks := map[string]SnapshotSink{
		"error": SnapshotFunc(func(Snapshot) error { return errors.New("disk full") }),
		"panic": SnapshotFunc(func(Snapshot) error { panic("renderer crashed") }),
		"mutate": SnapshotFunc(func(s Snapshot) error {
			for i := range s.X {
				s.X[i] = -1e6
				s.Z[i] = 0
			}
			return nil
		}),
	}
	for name, sink := range sinks {
		t.Run(name, func(t *testing.T) {
			m := runToEnd(t, cfg, WithSnapshotSink(sink))
			assert.Equal(t, want, m.Snapshot())
			assert.Equal(t, 5, m.Diagnostics().Snapshots)
		})
	}

	m := runToEnd(t, cfg, WithSnapshotSink(sinks["error"]))
	assert.Equal(t, 5, m.Diagnostics().SinkErrors)
}

func TestPositionsNeverMoveSeaward(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EndTime = 400
	cfg.SeaLevelRise = 0.005

	var m *Model
	var prev []float64
	calls := 0
	m = New(cfg, WithProgressSink(ProgressFunc(func(float64) {
		calls++
		x := m.Profile().X
		if prev != nil {
			for i := range x {
				require.GreaterOrEqual(t, x[i], prev[i], "row %d at t=%v", i, m.Time())
			}
		}
		prev = append(prev[:0], x...)
	})))
	require.NoError(t, m.Run())
	assert.Equal(t, m.Diagnostics().Steps, calls)
}

func TestCollapseInvariantHoldsAfterEveryStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EndTime = 400
	cfg.PlotInterval = cfg.Dt
	cfg.SeaLevelRise = 0.01

	checked := 0
	sink := SnapshotFunc(func(s Snapshot) error {
		p := &core.Profile{Z: s.Z, X: s.X}
		half := 0.5 * s.TidalRange
		low, high := p.NearestIndex(s.SeaLevel-half), p.NearestIndex(s.SeaLevel+half)
		notch := s.X[low]
		for i := low; i <= high; i++ {
			notch = math.Max(notch, s.X[i])
		}
		for i := high + 1; i < len(s.X); i++ {
			require.GreaterOrEqual(t, s.X[i], notch, "row %d at t=%v", i, s.Time)
		}
		checked++
		return nil
	})

	m := runToEnd(t, cfg, WithSnapshotSink(sink))
	assert.Equal(t, m.Diagnostics().Steps, checked)
	assert.Zero(t, m.Diagnostics().SinkErrors)
}

func TestElevationsFixedWithoutTectonics(t *testing.T) {
	cfg := shortConfig()
	cfg.SeaLevelRise = 0
	cfg.EarthquakeUplift = 0
	initial := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)

	m := runToEnd(t, cfg)

	assert.Equal(t, initial.Z, m.Profile().Z)
	assert.Zero(t, m.Diagnostics().Uplifts)
}

func TestUpliftShiftsEveryRow(t *testing.T) {
	cfg := shortConfig()
	cfg.EarthquakeUplift = 2
	cfg.EarthquakeTime = 50
	cfg.EarthquakeInterval = 100
	initial := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)

	m := runToEnd(t, cfg)

	require.Equal(t, 2, m.Diagnostics().Uplifts)
	for i, z := range m.Profile().Z {
		require.InDelta(t, initial.Z[i]+4, z, 1e-9, "row %d", i)
	}
}

func TestIntertidalNotchFormsUnderStillSeaLevel(t *testing.T) {
	m := runToEnd(t, DefaultConfig())

	var notch float64
	for i, r := range m.Retreat() {
		z := m.Profile().Z[i]
		if z >= -1 && z <= 1 {
			notch = math.Max(notch, r)
		}
	}

	assert.Greater(t, notch, retreatAt(m, 5))
	assert.Greater(t, notch, retreatAt(m, -5))
	assert.Zero(t, retreatAt(m, -5))
	assert.Zero(t, m.Diagnostics().BreakingFailures)
}

func TestRisingAndFallingSeaLevelLeaveDifferentProfiles(t *testing.T) {
	rising := DefaultConfig()
	rising.SeaLevelRise = 0.0035
	falling := DefaultConfig()
	falling.SeaLevelRise = -0.0035

	up := runToEnd(t, rising)
	down := runToEnd(t, falling)

	assert.Zero(t, retreatAt(up, -3.5))
	assert.Positive(t, retreatAt(down, -3.5))
	assert.Positive(t, retreatAt(up, 3.5))

	upResult, downResult := Measure(up), Measure(down)
	assert.Greater(t, upResult.RetreatCentroid, downResult.RetreatCentroid)
	assert.Greater(t, upResult.MaxRetreatElevation, downResult.MaxRetreatElevation)
	assert.InDelta(t, 1001*0.0035, upResult.FinalSeaLevel, 1e-9)
}

func TestShallowDomainCountsBreakingFailures(t *testing.T) {
	cfg := shortConfig()
	cfg.ZMin, cfg.ZMax = -2, 5

	m := runToEnd(t, cfg)

	assert.Positive(t, m.Diagnostics().BreakingFailures)
	assert.Equal(t, 201, m.Diagnostics().Steps)
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Models()["rockcoast"]
	require.True(t, ok)

	model, err := factory(map[string]string{"tidal_range": "3", "end_time": "10"})
	require.NoError(t, err)
	require.NoError(t, model.Reset())
	assert.Equal(t, "rockcoast", model.Name())

	rc, ok := model.(*Model)
	require.True(t, ok)
	assert.Equal(t, 3.0, rc.TidalRange())
	for model.Step() {
	}
	assert.Equal(t, 11.0, model.Time())

	_, err = factory(map[string]string{"tide": "3"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
