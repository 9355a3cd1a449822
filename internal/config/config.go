// Package config reads CLI defaults from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy"
)

// Config holds environment-provided settings. Command line flags override
// every field.
type Config struct {
	LogLevel         string `env:"STGY_LOG_LEVEL" envDefault:"warn"`
	JSONLog          bool   `env:"STGY_JSON_LOG" envDefault:"false"`
	CompressionLevel int    `env:"STGY_COMPRESSION_LEVEL" envDefault:"6"`
	SeedChar         string `env:"STGY_SEED_CHAR" envDefault:"a"`
}

// ParseEnv parses environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("STGY_LOG_LEVEL: unknown level %q", c.LogLevel)
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("STGY_COMPRESSION_LEVEL: %d is outside 1..9", c.CompressionLevel)
	}
	if len(c.SeedChar) != 1 {
		return fmt.Errorf("STGY_SEED_CHAR: want one character, got %q", c.SeedChar)
	}
	return nil
}

// Options turns the configuration into codec options using logger.
func (c Config) Options(logger hclog.Logger) stgy.Options {
	opts := stgy.DefaultOptions()
	opts.Logger = logger
	opts.CompressionLevel = c.CompressionLevel
	if len(c.SeedChar) == 1 {
		opts.Seed = c.SeedChar[0]
	}
	return opts
}

// Level returns the normalized log level name.
func (c Config) Level() string {
	return strings.ToLower(strings.TrimSpace(c.LogLevel))
}
