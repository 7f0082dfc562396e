package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"rockcoast/internal/sims/rockcoast"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends value.
func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map splits every entry on its first '='.
func (l KVList) Map() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q: want key=value", kv)
		}
		out[key] = value
	}
	return out, nil
}

// Config represents the command-line parameters shared by the commands.
type Config struct {
	ConfigPath string
	Overrides  KVList
	LogLevel   string

	Scale  int
	TPS    int
	Width  int
	Height int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{LogLevel: "info", Scale: 2, TPS: 60, Width: 480, Height: 320}
}

// Bind attaches the model flags to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML model configuration file")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
}

// BindView attaches the viewer flags to the provided FlagSet.
func (c *Config) BindView(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "model steps per second")
	fs.IntVar(&c.Width, "width", c.Width, "profile view width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "profile view height in pixels")
}

// ModelConfig loads the configuration file, if any, and applies the
// overrides on top. The result is not validated.
func (c *Config) ModelConfig() (rockcoast.Config, error) {
	cfg := rockcoast.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := rockcoast.LoadFile(c.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	kv, err := c.Overrides.Map()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Apply(kv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Logger builds a text logger on w at the configured level.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
