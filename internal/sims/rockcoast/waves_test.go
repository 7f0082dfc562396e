package rockcoast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockcoast/internal/core"
)

func TestAccumulateWaveForceFromBreakingPointToHighTide(t *testing.T) {
	cfg := DefaultConfig()
	p := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)
	force := make([]float64, p.Len())
	high := p.NearestIndex(1)

	require.True(t, accumulateWaveForce(force, p, 0, high, &cfg))

	breakInd := p.NearestIndex(-1.6)
	for i, f := range force {
		if i >= breakInd && i <= high {
			assert.InDelta(t, 40, f, 1e-9, "row %d inside the surf zone", i)
			continue
		}
		assert.Zero(t, f, "row %d outside the surf zone", i)
	}
}

func TestAccumulateWaveForceAtLowTideReachesAboveWaterLine(t *testing.T) {
	cfg := DefaultConfig()
	p := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)
	force := make([]float64, p.Len())
	high := p.NearestIndex(1)

	require.True(t, accumulateWaveForce(force, p, -1, high, &cfg))

	assert.InDelta(t, 40, force[p.NearestIndex(-0.5)], 1e-9, "between water line and high tide")
	assert.InDelta(t, 40, force[p.NearestIndex(0.5)], 1e-9)
	assert.InDelta(t, 40, force[high], 1e-9)
	assert.InDelta(t, 40, force[p.NearestIndex(-2.6)], 1e-9, "breaking row")
	assert.Zero(t, force[p.NearestIndex(-2.6)-1], "seaward of breaking")
	assert.Zero(t, force[high+1], "above high tide")
}

func TestAccumulateWaveForceStopsAtHighTide(t *testing.T) {
	cfg := DefaultConfig()
	p := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)
	force := make([]float64, p.Len())
	high := p.NearestIndex(-0.5)

	require.True(t, accumulateWaveForce(force, p, 0, high, &cfg))
	assert.Positive(t, force[high])
	assert.Zero(t, force[high+1])
}

func TestAccumulateWaveForceIsFlatByDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WaveDecayCoef = 5
	p := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)
	force := make([]float64, p.Len())
	require.True(t, accumulateWaveForce(force, p, 0, p.Len()-1, &cfg))
	assert.Equal(t, force[p.NearestIndex(-1.6)], force[p.NearestIndex(0)])
}

func TestAccumulateWaveForceDecaysWithDistance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DecayWithDistance = true
	p := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)
	force := make([]float64, p.Len())
	require.True(t, accumulateWaveForce(force, p, 0, p.Len()-1, &cfg))

	breakInd := p.NearestIndex(-1.6)
	waterInd := p.NearestIndex(0)
	assert.InDelta(t, 40, force[breakInd], 1e-9)
	for i := breakInd + 1; i <= waterInd; i++ {
		assert.Less(t, force[i], force[i-1], "row %d", i)
	}
	// 1.6 m travelled at k=0.1: 40*exp(-0.32).
	assert.InDelta(t, 29.04596, force[waterInd], 1e-4)
}

func TestAccumulateWaveForceGuardsProfileEdges(t *testing.T) {
	cfg := DefaultConfig()
	p := core.NewProfile(-2, 5, cfg.Dz, cfg.InitialSlope)
	force := make([]float64, p.Len())

	assert.False(t, accumulateWaveForce(force, p, -3, p.Len()-1, &cfg), "water below the profile")
	assert.False(t, accumulateWaveForce(force, p, -1, p.Len()-1, &cfg), "breaking seaward of the profile")
	for _, f := range force {
		assert.Zero(t, f)
	}
	assert.True(t, accumulateWaveForce(force, p, 0, p.Len()-1, &cfg))
}

func TestWaveForceSumsTideSamples(t *testing.T) {
	cfg := DefaultConfig()
	p := core.NewProfile(cfg.ZMin, cfg.ZMax, cfg.Dz, cfg.InitialSlope)
	force := make([]float64, p.Len())
	for i := range force {
		force[i] = 99
	}

	failures := waveForce(force, p, 0, []float64{0, 0, 0}, p.Len()-1, &cfg)
	assert.Zero(t, failures)
	assert.InDelta(t, 120, force[p.NearestIndex(-1)], 1e-9)
	assert.Zero(t, force[0], "stale force is cleared")
}
