// Package config loads the on-disk timer defaults consumed by the CLI:
// clock kind, reporting unit and diagnostic verbosity.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/benchtick/benchtick/pkg/clock"
	"github.com/benchtick/benchtick/pkg/logging"
	"github.com/benchtick/benchtick/pkg/units"
)

// Config is the YAML schema of the benchtick config file. Every field is
// optional; unknown values degrade to safe defaults instead of failing.
type Config struct {
	Clock     string `yaml:"clock"`     // realtime|realtime_coarse|monotonic|monotonic_coarse|monotonic_raw|boottime|process_cpu_time|thread_cpu_time
	Unit      string `yaml:"unit"`      // seconds|milliseconds|microseconds|nanoseconds (or s|ms|us|ns)
	Verbosity string `yaml:"verbosity"` // off|errors|debug
}

// Default returns the built-in configuration: monotonic clock, seconds,
// error-level diagnostics.
func Default() *Config {
	return &Config{
		Clock:     "monotonic",
		Unit:      "seconds",
		Verbosity: "errors",
	}
}

// Load reads a YAML config file. Missing fields get defaults; a missing or
// unreadable file is an error so the caller can distinguish "no config" from
// "broken config".
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Clock == "" {
		cfg.Clock = "monotonic"
	}
	if cfg.Unit == "" {
		cfg.Unit = "seconds"
	}
	if cfg.Verbosity == "" {
		cfg.Verbosity = "errors"
	}

	return &cfg, nil
}

// ClockKind parses the configured clock, falling back to realtime with a
// diagnostic on unknown values.
func (c *Config) ClockKind(log *logging.Logger) clock.Kind {
	k, err := clock.Parse(c.Clock)
	if err != nil {
		log.Error("invalid clock in config, using realtime", map[string]interface{}{
			"clock": c.Clock,
		})
		return clock.Realtime
	}
	return k
}

// TimeUnit parses the configured unit, falling back to seconds with a
// diagnostic on unknown values.
func (c *Config) TimeUnit(log *logging.Logger) units.Unit {
	u, err := units.Parse(c.Unit)
	if err != nil {
		log.Error("invalid unit in config, using seconds", map[string]interface{}{
			"unit": c.Unit,
		})
		return units.Seconds
	}
	return u
}

// Level maps the configured verbosity onto a logging level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.Verbosity)
}
