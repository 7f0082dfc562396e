package rockcoast

import "math"

const (
	// TidalPeriod is the length of one semidiurnal tide in hours.
	TidalPeriod = 12.0

	// One diurnal cycle covers two semidiurnal tides.
	tideCycleHours = 24.0
)

// TideLevels samples water-level offsets from mean sea level over one diurnal
// cycle: 0.5*tidalRange*sin(2πt/TidalPeriod) for t in [0, 24) hours stepping
// by interval. The result always holds at least one sample.
func TideLevels(tidalRange, interval float64) []float64 {
	if interval <= 0 {
		interval = 1
	}
	n := int(math.Ceil(tideCycleHours/interval - 1e-9))
	if n < 1 {
		n = 1
	}
	levels := make([]float64, n)
	for i := range levels {
		t := float64(i) * interval
		levels[i] = 0.5 * tidalRange * math.Sin(2*math.Pi*t/TidalPeriod)
	}
	return levels
}
