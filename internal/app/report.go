package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/invopop/jsonschema"

	"rockcoast/internal/core"
	"rockcoast/internal/sims/rockcoast"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(26)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ParameterTable renders the parameter groups as bordered key/value blocks.
func ParameterTable(p core.ParameterProvider) string {
	s := p.Parameters()
	blocks := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		rows := []string{headerStyle.Render(g.Name)}
		for _, p := range g.Params {
			v := p.Value
			if p.Unit != "" {
				v += " " + p.Unit
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(p.Key), valueStyle.Render(v)))
		}
		blocks = append(blocks, boxStyle.Render(strings.Join(rows, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// Summary renders the end-of-run report.
func Summary(m *rockcoast.Model) string {
	r := rockcoast.Measure(m)
	d := r.Diagnostics
	rows := [][2]string{
		{"time", fmt.Sprintf("%g", m.Time())},
		{"sea level", fmt.Sprintf("%.3f m", r.FinalSeaLevel)},
		{"steps", fmt.Sprint(d.Steps)},
		{"erosion events", fmt.Sprint(d.ErosionEvents)},
		{"collapsed rows", fmt.Sprint(d.CollapsedRows)},
		{"uplifts", fmt.Sprint(d.Uplifts)},
		{"snapshots", fmt.Sprint(d.Snapshots)},
		{"max retreat", fmt.Sprintf("%.2f m at z=%.2f m", r.MaxRetreat, r.MaxRetreatElevation)},
		{"retreat centroid", fmt.Sprintf("z=%.2f m", r.RetreatCentroid)},
		{"eroded rows", fmt.Sprint(r.ErodedRows)},
	}
	if d.BreakingFailures > 0 {
		rows = append(rows, [2]string{"samples without breaker", fmt.Sprint(d.BreakingFailures)})
	}
	if d.SinkErrors > 0 {
		rows = append(rows, [2]string{"sink errors", fmt.Sprint(d.SinkErrors)})
	}
	lines := []string{headerStyle.Render("Run summary")}
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(r[0]), valueStyle.Render(r[1])))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// ConfigSchema describes the YAML/JSON configuration file.
func ConfigSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(rockcoast.Config))
	schema.Title = "rockcoast configuration"
	schema.Description = "Parameters of the rock coast cross-section model"
	return schema
}
