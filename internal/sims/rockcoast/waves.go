package rockcoast

import (
	"math"

	"rockcoast/internal/core"
)

// breakingRatio is the water depth, as a fraction of wave height, at which
// waves break.
const breakingRatio = 0.8

// accumulateWaveForce adds the force exerted at one water level to force.
//
// Waves break at the submerged row whose depth is closest to
// breakingRatio*WaveHeight and act on every row from there landward up to and
// including the high-tide row, whatever the current water level. It reports
// false, contributing nothing, when the breaking point cannot be located
// inside the profile.
func accumulateWaveForce(force []float64, p *core.Profile, waterLevel float64, highTideInd int, cfg *Config) bool {
	waterInd := p.NearestIndex(waterLevel)
	if waterInd == 0 {
		return false
	}

	breakDepth := breakingRatio * cfg.WaveHeight
	breakInd := 0
	bestDiff := math.Inf(1)
	for i := 0; i <= waterInd; i++ {
		if d := math.Abs(waterLevel - p.Z[i] - breakDepth); d < bestDiff {
			breakInd = i
			bestDiff = d
		}
	}
	// Breaking seaward of the deepest row.
	if breakInd == 0 && waterLevel-p.Z[0] < breakDepth-0.5*cfg.Dz {
		return false
	}

	for i := breakInd; i <= highTideInd && i < p.Len(); i++ {
		h := cfg.WaveHeight
		if cfg.DecayWithDistance {
			h *= math.Exp(-cfg.WaveDecayCoef * math.Abs(p.X[i]-p.X[breakInd]))
		}
		force[i] += cfg.WaveForceCoef * h * h
	}
	return true
}

// waveForce integrates the wave force over every tide sample. It returns the
// number of samples for which no breaking point was found.
func waveForce(force []float64, p *core.Profile, seaLevel float64, tides []float64, highTideInd int, cfg *Config) int {
	for i := range force {
		force[i] = 0
	}
	failures := 0
	for _, offset := range tides {
		if !accumulateWaveForce(force, p, seaLevel+offset, highTideInd, cfg) {
			failures++
		}
	}
	return failures
}
