package ui

import (
	"fmt"

	"rockcoast/internal/core"
	"rockcoast/internal/sims/rockcoast"
)

// Status is the live state shown above the parameter listing.
type Status struct {
	Name       string
	Time       float64
	EndTime    float64
	SeaLevel   float64
	TidalRange float64
	NextQuake  float64
	Paused     bool
	Speed      int
	Diag       rockcoast.Diagnostics
}

// StatusOf reads the status of m.
func StatusOf(m *rockcoast.Model) Status {
	cfg := m.Config()
	return Status{
		Name:       m.Name(),
		Time:       m.Time(),
		EndTime:    cfg.EndTime,
		SeaLevel:   m.SeaLevel(),
		TidalRange: m.TidalRange(),
		NextQuake:  m.NextEarthquake(),
		Diag:       m.Diagnostics(),
	}
}

// Lines lays out the HUD text: status first, then one block per parameter
// group.
func Lines(s Status, params core.ParameterSnapshot) []string {
	state := "running"
	switch {
	case s.Time > s.EndTime:
		state = "finished"
	case s.Paused:
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("%s (%s, x%d)", s.Name, state, s.Speed),
		fmt.Sprintf("t          %8.1f / %g", s.Time, s.EndTime),
		fmt.Sprintf("sea level  %8.3f m", s.SeaLevel),
		fmt.Sprintf("tide       %8.3f .. %.3f", s.SeaLevel-0.5*s.TidalRange, s.SeaLevel+0.5*s.TidalRange),
		fmt.Sprintf("next quake %8.1f", s.NextQuake),
		fmt.Sprintf("erosion    %8d", s.Diag.ErosionEvents),
		fmt.Sprintf("collapsed  %8d", s.Diag.CollapsedRows),
		fmt.Sprintf("uplifts    %8d", s.Diag.Uplifts),
	}
	if s.Diag.BreakingFailures > 0 {
		lines = append(lines, fmt.Sprintf("no breaker %8d", s.Diag.BreakingFailures))
	}
	for _, g := range params.Groups {
		lines = append(lines, "", "["+g.Name+"]")
		for _, p := range g.Params {
			v := p.Value
			if p.Unit != "" {
				v += " " + p.Unit
			}
			lines = append(lines, fmt.Sprintf("%-18s %s", p.Label, v))
		}
	}
	return lines
}
