package rockcoast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatheringProfilePeaksAboveMeanSeaLevel(t *testing.T) {
	const dz = 0.1
	for _, tr := range []float64{0.5, 1, 2, 3, 4.2, 8} {
		rates := WeatheringProfile(tr, dz, 100)
		require.NotEmpty(t, rates, "tidal range %v", tr)

		best := 0
		for j, w := range rates {
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 100.0)
			if w > rates[best] {
				best = j
			}
		}
		z := -0.5*tr + float64(best)*dz
		assert.InDelta(t, 0.25*tr, z, dz, "tidal range %v peaks at %v", tr, z)
	}
}

func TestWeatheringProfileIsStoredLowTideFirst(t *testing.T) {
	rates := WeatheringProfile(2, 0.1, 100)
	require.Len(t, rates, 21)
	// Index 15 is 0.5 m above mean sea level, the peak for a 2 m range.
	assert.InDelta(t, 100, rates[15], 1e-9)
	assert.Less(t, rates[0], rates[10])
	assert.Less(t, rates[10], rates[15])
}

func TestWeatheringProfileDecaysFasterAbovePeak(t *testing.T) {
	rates := WeatheringProfile(2, 0.1, 100)
	above := rates[18] // 0.3 m above the peak
	below := rates[12] // 0.3 m below the peak
	assert.Less(t, above, below)
	assert.InDelta(t, 100*0.16529888822158656, above, 1e-9) // exp(-0.09/0.05)
	assert.InDelta(t, 100*0.835270211411272, below, 1e-9)   // exp(-0.09/0.5)
}

func TestWeatheringProfileRejectsDegenerateInputs(t *testing.T) {
	assert.Nil(t, WeatheringProfile(0, 0.1, 100))
	assert.Nil(t, WeatheringProfile(2, 0, 100))
}
