package rockcoast

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration rejection.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError reports a single rejected configuration value.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rockcoast: %s=%s: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Config holds every tunable of the rock coast model. Lengths are metres,
// times are years unless noted otherwise.
type Config struct {
	InitialSlope float64 `yaml:"initial_slope" json:"initial_slope" jsonschema:"description=Gradient of the initial planar profile (dz/dx)"`
	Dz           float64 `yaml:"dz" json:"dz" jsonschema:"description=Vertical row spacing"`
	ZMin         float64 `yaml:"z_min" json:"z_min" jsonschema:"description=Lowest row elevation"`
	ZMax         float64 `yaml:"z_max" json:"z_max" jsonschema:"description=Highest row elevation"`

	WaveHeight        float64 `yaml:"wave_height" json:"wave_height" jsonschema:"description=Offshore wave height"`
	WaveForceCoef     float64 `yaml:"wave_force_coef" json:"wave_force_coef" jsonschema:"description=Scale applied to squared wave height"`
	WaveDecayCoef     float64 `yaml:"wave_decay_coef" json:"wave_decay_coef" jsonschema:"description=Exponential decay of broken wave height per metre"`
	DecayWithDistance bool    `yaml:"decay_with_distance" json:"decay_with_distance" jsonschema:"description=Decay broken waves with distance from the breaking row"`

	TidalRange         float64 `yaml:"tidal_range" json:"tidal_range" jsonschema:"description=Spring tidal range"`
	TideSampleInterval float64 `yaml:"tide_sample_interval" json:"tide_sample_interval" jsonschema:"description=Tidal sampling increment in hours"`

	SeaLevel     float64 `yaml:"sea_level" json:"sea_level" jsonschema:"description=Initial mean sea level"`
	SeaLevelRise float64 `yaml:"sea_level_rise" json:"sea_level_rise" jsonschema:"description=Relative sea-level change per year"`

	EarthquakeUplift   float64 `yaml:"earthquake_uplift" json:"earthquake_uplift" jsonschema:"description=Co-seismic uplift per event"`
	EarthquakeTime     float64 `yaml:"earthquake_time" json:"earthquake_time" jsonschema:"description=Time of the first earthquake"`
	EarthquakeInterval float64 `yaml:"earthquake_interval" json:"earthquake_interval" jsonschema:"description=Recurrence interval between earthquakes"`

	MaxResistance         float64 `yaml:"max_resistance" json:"max_resistance" jsonschema:"description=Resistance of fresh rock"`
	MaxWeatheringEfficacy float64 `yaml:"max_weathering_efficacy" json:"max_weathering_efficacy" jsonschema:"description=Peak resistance lost to weathering per step"`
	ErosionIncrement      float64 `yaml:"erosion_increment" json:"erosion_increment" jsonschema:"description=Retreat distance of one erosion event"`

	Time         float64 `yaml:"time" json:"time" jsonschema:"description=Start time"`
	Dt           float64 `yaml:"dt" json:"dt" jsonschema:"description=Timestep"`
	EndTime      float64 `yaml:"end_time" json:"end_time" jsonschema:"description=End time (inclusive)"`
	PlotInterval float64 `yaml:"plot_interval" json:"plot_interval" jsonschema:"description=Time between profile snapshots"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		InitialSlope: 1,
		Dz:           0.1,
		ZMin:         -15,
		ZMax:         15,

		WaveHeight:    2,
		WaveForceCoef: 10,
		WaveDecayCoef: 0.1,

		TidalRange:         2,
		TideSampleInterval: 1,

		SeaLevel:     0,
		SeaLevelRise: 0,

		EarthquakeUplift:   0,
		EarthquakeTime:     1000,
		EarthquakeInterval: 1000,

		MaxResistance:         2000,
		MaxWeatheringEfficacy: 100,
		ErosionIncrement:      0.1,

		Time:         0,
		Dt:           1,
		EndTime:      1000,
		PlotInterval: 100,
	}
}

type field struct {
	key   string
	label string
	unit  string
	group string
	ptr   *float64
}

const decayWithDistanceKey = "decay_with_distance"

func (c *Config) fields() []field {
	return []field{
		{"initial_slope", "Initial slope", "", "Profile", &c.InitialSlope},
		{"dz", "Row spacing", "m", "Profile", &c.Dz},
		{"z_min", "Lowest elevation", "m", "Profile", &c.ZMin},
		{"z_max", "Highest elevation", "m", "Profile", &c.ZMax},
		{"wave_height", "Wave height", "m", "Waves", &c.WaveHeight},
		{"wave_force_coef", "Wave force coefficient", "", "Waves", &c.WaveForceCoef},
		{"wave_decay_coef", "Wave decay coefficient", "1/m", "Waves", &c.WaveDecayCoef},
		{"tidal_range", "Tidal range", "m", "Tides", &c.TidalRange},
		{"tide_sample_interval", "Tide sample interval", "h", "Tides", &c.TideSampleInterval},
		{"max_resistance", "Max resistance", "", "Rock", &c.MaxResistance},
		{"max_weathering_efficacy", "Max weathering efficacy", "", "Rock", &c.MaxWeatheringEfficacy},
		{"erosion_increment", "Erosion increment", "m", "Rock", &c.ErosionIncrement},
		{"sea_level", "Sea level", "m", "Sea level", &c.SeaLevel},
		{"sea_level_rise", "Sea-level rise", "m/yr", "Sea level", &c.SeaLevelRise},
		{"earthquake_uplift", "Earthquake uplift", "m", "Tectonics", &c.EarthquakeUplift},
		{"earthquake_time", "First earthquake", "yr", "Tectonics", &c.EarthquakeTime},
		{"earthquake_interval", "Earthquake interval", "yr", "Tectonics", &c.EarthquakeInterval},
		{"time", "Start time", "yr", "Clock", &c.Time},
		{"dt", "Timestep", "yr", "Clock", &c.Dt},
		{"end_time", "End time", "yr", "Clock", &c.EndTime},
		{"plot_interval", "Snapshot interval", "yr", "Clock", &c.PlotInterval},
	}
}

// Keys lists every key accepted by Apply in a stable order.
func Keys() []string {
	var c Config
	fs := c.fields()
	keys := make([]string, 0, len(fs)+1)
	for _, f := range fs {
		keys = append(keys, f.key)
	}
	keys = append(keys, decayWithDistanceKey)
	return keys
}

// Apply overrides config values from flag-style key/value pairs. Unknown keys
// and unparsable values are rejected.
func (c *Config) Apply(kv map[string]string) error {
	if len(kv) == 0 {
		return nil
	}
	byKey := make(map[string]*float64)
	for _, f := range c.fields() {
		byKey[f.key] = f.ptr
	}

	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		v := strings.TrimSpace(kv[k])
		if k == decayWithDistanceKey {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, &ConfigError{Field: k, Value: v, Reason: "not a boolean"})
				continue
			}
			c.DecayWithDistance = parsed
			continue
		}
		ptr, ok := byKey[k]
		if !ok {
			errs = append(errs, &ConfigError{Field: k, Value: v, Reason: "unknown parameter"})
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, &ConfigError{Field: k, Value: v, Reason: "not a number"})
			continue
		}
		*ptr = parsed
	}
	return errors.Join(errs...)
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(kv map[string]string) (Config, error) {
	c := DefaultConfig()
	err := c.Apply(kv)
	return c, err
}

// LoadFile reads a YAML config file on top of the defaults. Keys missing from
// the file keep their default values.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := c.UnmarshalYAMLBytes(data); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// UnmarshalYAMLBytes decodes YAML into c, rejecting unknown keys.
func (c *Config) UnmarshalYAMLBytes(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// YAML encodes the config in the layout LoadFile reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate rejects configurations that cannot be run. All offending values are
// reported, each as a *ConfigError wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	reject := func(name string, v float64, reason string) {
		errs = append(errs, &ConfigError{Field: name, Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: reason})
	}

	for _, f := range c.fields() {
		if math.IsNaN(*f.ptr) || math.IsInf(*f.ptr, 0) {
			reject(f.key, *f.ptr, "must be finite")
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if c.Dz <= 0 {
		reject("dz", c.Dz, "must be positive")
	}
	if c.TidalRange <= 0 {
		reject("tidal_range", c.TidalRange, "must be positive")
	}
	if c.Dt <= 0 {
		reject("dt", c.Dt, "must be positive")
	}
	if c.ZMin >= c.ZMax {
		reject("z_min", c.ZMin, fmt.Sprintf("must be below z_max (%g)", c.ZMax))
	}
	if c.MaxResistance <= 0 {
		reject("max_resistance", c.MaxResistance, "must be positive")
	}
	if c.InitialSlope <= 0 {
		reject("initial_slope", c.InitialSlope, "must be positive")
	}
	if c.ErosionIncrement <= 0 {
		reject("erosion_increment", c.ErosionIncrement, "must be positive")
	}
	if c.TideSampleInterval <= 0 || c.TideSampleInterval > tideCycleHours {
		reject("tide_sample_interval", c.TideSampleInterval, fmt.Sprintf("must be in (0, %g]", tideCycleHours))
	}
	if c.PlotInterval <= 0 {
		reject("plot_interval", c.PlotInterval, "must be positive")
	}
	if c.WaveHeight < 0 {
		reject("wave_height", c.WaveHeight, "must not be negative")
	}
	if c.WaveForceCoef < 0 {
		reject("wave_force_coef", c.WaveForceCoef, "must not be negative")
	}
	if c.WaveDecayCoef < 0 {
		reject("wave_decay_coef", c.WaveDecayCoef, "must not be negative")
	}
	if c.MaxWeatheringEfficacy < 0 {
		reject("max_weathering_efficacy", c.MaxWeatheringEfficacy, "must not be negative")
	}
	if c.EarthquakeUplift != 0 && c.EarthquakeInterval <= 0 {
		reject("earthquake_interval", c.EarthquakeInterval, "must be positive when earthquake_uplift is set")
	}
	if c.Dz > 0 && c.TidalRange > 0 && c.TidalRange > c.ZMax-c.ZMin {
		reject("tidal_range", c.TidalRange, "exceeds the profile height")
	}
	return errors.Join(errs...)
}
