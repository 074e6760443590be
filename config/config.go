package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Playback PlaybackConfig `yaml:"playback"`
	Sessions SessionsConfig `yaml:"sessions"`
	Uploads  UploadsConfig  `yaml:"uploads"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type PlaybackConfig struct {
	// GapRate is the elevated playback rate applied while skipping the
	// gap between highlights.
	GapRate float64 `yaml:"gap_rate"`
	// SeekEpsilon is the hysteresis window in seconds below which an
	// external seek is treated as the controller's own rounding.
	SeekEpsilon float64 `yaml:"seek_epsilon"`
	// TickIntervalMS is the cadence of the simulated media clock in
	// milliseconds.
	TickIntervalMS int `yaml:"tick_interval_ms"`
}

// TickInterval returns the media clock cadence as a duration.
func (p PlaybackConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMS) * time.Millisecond
}

type SessionsConfig struct {
	Max int `yaml:"max"`
}

type UploadsConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Listen: ":8080"},
		Log:      LogConfig{Level: "info"},
		Playback: PlaybackConfig{GapRate: 1.05, SeekEpsilon: 0.5, TickIntervalMS: 250},
		Sessions: SessionsConfig{Max: 16},
		Uploads:  UploadsConfig{Dir: "uploads"},
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
