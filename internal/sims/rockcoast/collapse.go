package rockcoast

import "rockcoast/internal/core"

// collapse removes overhangs above the intertidal notch: every row above high
// is pushed back to at least the most retreated intertidal position. It
// returns the number of rows that moved.
func collapse(p *core.Profile, low, high int) int {
	if low < 0 || high >= p.Len() || low > high {
		return 0
	}
	notch := p.X[low]
	for i := low + 1; i <= high; i++ {
		if p.X[i] > notch {
			notch = p.X[i]
		}
	}
	moved := 0
	for i := high + 1; i < p.Len(); i++ {
		if p.X[i] < notch {
			p.X[i] = notch
			moved++
		}
	}
	return moved
}
