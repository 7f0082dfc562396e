package rockcoast

import (
	"strconv"

	"rockcoast/internal/core"
)

// Parameters describes the configuration grouped for display.
func (m *Model) Parameters() core.ParameterSnapshot {
	return m.cfg.Parameters()
}

// Parameters describes the configuration grouped for display, in the order
// the groups first appear in the field table.
func (c Config) Parameters() core.ParameterSnapshot {
	var groups []core.ParameterGroup
	index := make(map[string]int)
	add := func(group string, p core.Parameter) {
		i, ok := index[group]
		if !ok {
			i = len(groups)
			index[group] = i
			groups = append(groups, core.ParameterGroup{Name: group})
		}
		groups[i].Params = append(groups[i].Params, p)
	}

	for _, f := range c.fields() {
		add(f.group, floatParam(f.key, f.label, f.unit, *f.ptr))
		if f.key == "wave_decay_coef" {
			add(f.group, boolParam(decayWithDistanceKey, "Decay with distance", c.DecayWithDistance))
		}
	}
	return core.ParameterSnapshot{Groups: groups}
}

func floatParam(key, label, unit string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
		Unit:  unit,
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
