package rockcoast

import "math"

// WeatheringProfile returns the per-row weathering rate across the intertidal
// band, sampled every dz from high tide (+0.5*tidalRange) down to low tide
// (-0.5*tidalRange) and stored low tide first so index j applies to the row j
// rows above the current low-tide row.
//
// Efficacy peaks at 0.25*tidalRange above mean sea level. The decay above the
// peak is ten times sharper than below it.
func WeatheringProfile(tidalRange, dz, maxEfficacy float64) []float64 {
	if tidalRange <= 0 || dz <= 0 {
		return nil
	}
	n := int(math.Floor(tidalRange/dz+0.5)) + 1
	peak := 0.25 * tidalRange
	rates := make([]float64, n)
	for k := 0; k < n; k++ {
		z := 0.5*tidalRange - float64(k)*dz
		var w float64
		if z > peak {
			w = maxEfficacy * math.Exp(-(z-peak)*(z-peak)/(0.1*peak))
		} else {
			w = maxEfficacy * math.Exp(-(peak-z)*(peak-z)/peak)
		}
		rates[n-1-k] = w
	}
	return rates
}
