// Package config loads LocalBoard settings from an optional YAML file.
// Values may reference environment variables as ${NAME}; a .env file next
// to the binary is honoured when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "localboard.yaml"

// Config holds every tunable of a board session.
type Config struct {
	// Name is announced over mDNS. Empty means the hostname.
	Name string `yaml:"name"`
	// Port is where the host accepts peers.
	Port int `yaml:"port"`
	// Advertise turns on mDNS announcement while hosting.
	Advertise bool `yaml:"advertise"`

	Brush  BrushConfig  `yaml:"brush"`
	Export ExportConfig `yaml:"export"`

	// UpdateRate is the number of in-progress path updates per second.
	UpdateRate int `yaml:"update_rate"`
	// LiveUpdates lets the pencil emit in-progress stroke deltas.
	LiveUpdates bool `yaml:"live_updates"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// BrushConfig is the pencil's starting state.
type BrushConfig struct {
	Color string  `yaml:"color"`
	Width float32 `yaml:"width"`
}

// ExportConfig sizes PNG exports.
type ExportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:       8888,
		Advertise:  true,
		Brush:      BrushConfig{Color: "#000000", Width: 3},
		Export:     ExportConfig{Width: 1600, Height: 1200},
		UpdateRate: 30,
		LogLevel:   "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from path. A missing file is
// ignored so .env files stay optional.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if !hexColor.MatchString(c.Brush.Color) {
		return fmt.Errorf("config: brush color %q: want #rgb or #rrggbb", c.Brush.Color)
	}
	if c.Brush.Width <= 0 {
		return fmt.Errorf("config: brush width must be positive")
	}
	if c.UpdateRate <= 0 || c.UpdateRate > 240 {
		return fmt.Errorf("config: update_rate %d out of range 1-240", c.UpdateRate)
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("config: export size must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}
