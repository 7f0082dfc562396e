package core

import "math"

// Profile stores a cross-shore profile as parallel elevation and position
// slices. Row i sits at elevation Z[i] and horizontal position X[i]; rows are
// ordered from the lowest elevation upwards.
type Profile struct {
	Z []float64
	X []float64
}

// NewProfile samples elevations from zMin to zMax (inclusive) every dz and
// places each row on a planar initial slope.
func NewProfile(zMin, zMax, dz, slope float64) *Profile {
	if dz <= 0 || zMax < zMin {
		return &Profile{}
	}
	n := int(math.Floor((zMax-zMin)/dz+0.5)) + 1
	p := &Profile{Z: make([]float64, n), X: make([]float64, n)}
	for i := 0; i < n; i++ {
		z := zMin + float64(i)*dz
		p.Z[i] = z
		if slope != 0 {
			p.X[i] = z / slope
		}
	}
	return p
}

// Len returns the number of rows.
func (p *Profile) Len() int { return len(p.Z) }

// NearestIndex returns the first row whose elevation is closest to z.
func (p *Profile) NearestIndex(z float64) int {
	best := 0
	bestDiff := math.Inf(1)
	for i, zi := range p.Z {
		if d := math.Abs(zi - z); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return best
}

// Shift raises every elevation by dz without moving any row horizontally.
func (p *Profile) Shift(dz float64) {
	for i := range p.Z {
		p.Z[i] += dz
	}
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	return &Profile{
		Z: append([]float64(nil), p.Z...),
		X: append([]float64(nil), p.X...),
	}
}
