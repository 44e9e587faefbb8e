package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config is the host configuration consumed by the daemon entry point and
// the OS layer.
type Config struct {
	// Interval is the monitoring loop period in seconds.
	Interval  int             `toml:"interval" env:"MONITOR_INTERVAL"`
	Process   ProcessConfig   `toml:"process"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// ProcessConfig describes the identity the daemon assumes after a
// privileged fork. User and Group accept symbolic names or numeric ids;
// Umask is an octal string ("027").
type ProcessConfig struct {
	User  string `toml:"user" env:"MONITOR_USER"`
	Group string `toml:"group" env:"MONITOR_GROUP"`
	Umask string `toml:"umask" env:"MONITOR_UMASK"`
}

// UmaskValue parses the configured octal umask. The second return is
// false when no umask is configured.
func (p ProcessConfig) UmaskValue() (int, bool, error) {
	if p.Umask == "" {
		return 0, false, nil
	}
	mask, err := strconv.ParseInt(p.Umask, 8, 32)
	if err != nil {
		return 0, false, fmt.Errorf("invalid umask %q: %w", p.Umask, err)
	}
	return int(mask), true, nil
}

// TelemetryConfig carries execution-tracing settings. Attribute values are
// expressions evaluated against each completed command run.
type TelemetryConfig struct {
	Enabled    bool              `toml:"enabled" env:"MONITOR_TELEMETRY"`
	Attributes map[string]string `toml:"attributes"`
}

// Load reads path as TOML, applies environment overrides, and validates
// the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg := &Config{Interval: 60}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config env overrides: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", c.Interval)
	}
	if _, _, err := c.Process.UmaskValue(); err != nil {
		return err
	}
	return nil
}
