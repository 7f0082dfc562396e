package rockcoast

import "math"

// weather removes the weathering rate from every intertidal row. Rates are
// looked up by each row's height above the low-tide level, so they stay
// anchored to the tide even when low tide lies below the first row.
func (m *Model) weather(low, high int) {
	lowTide := m.seaLevel - 0.5*m.cfg.TidalRange
	for i := low; i <= high; i++ {
		j := int(math.Floor((m.profile.Z[i]-lowTide)/m.cfg.Dz + 0.5))
		if j < 0 || j >= len(m.weathering) {
			continue
		}
		m.resistance[i] -= m.weathering[j]
	}
}

// erode converts accumulated wave force into retreat and returns the number of
// erosion increments applied.
func (m *Model) erode() int {
	events := 0
	for i, f := range m.force {
		events += m.erodeRow(i, f)
	}
	return events
}

// erodeRow retreats row i by one increment every time force exceeds the
// remaining resistance. Each increment consumes that resistance and restores
// the rock to MaxResistance.
//
// Force left over after the last increment is not discarded: it fatigues the
// row by lowering its resistance, and fatigue that exhausts the rock counts as
// one more increment. This applies to every row, so rows outside the tidal
// window lose resistance through wave fatigue as well as through resets,
// while weathering stays confined to the window.
func (m *Model) erodeRow(i int, force float64) int {
	maxR := m.cfg.MaxResistance
	n := 0
	for force > m.resistance[i] {
		m.profile.X[i] += m.cfg.ErosionIncrement
		force -= m.resistance[i]
		m.resistance[i] = maxR
		n++
	}
	if force > 0 {
		m.resistance[i] -= force
		if m.resistance[i] <= 0 {
			m.profile.X[i] += m.cfg.ErosionIncrement
			m.resistance[i] = maxR
			n++
		}
	}
	return n
}
