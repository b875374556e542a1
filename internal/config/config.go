// Package config resolves run settings from defaults, a .env file, an
// optional YAML file and environment overrides. CLI flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dshills/porutham/internal/verdict"
)

const (
	configPathEnv = "PORUTHAM_CONFIG"
	logLevelEnv   = "PORUTHAM_LOG_LEVEL"
	formatEnv     = "PORUTHAM_FORMAT"
	tablesEnv     = "PORUTHAM_TABLES"
	failOnEnv     = "PORUTHAM_FAIL_ON"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ErrInvalid is returned when a resolved setting is out of range.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the settings shared by every subcommand.
type Config struct {
	LogLevel string `yaml:"logLevel"`
	Format   string `yaml:"format"`
	// Tables is a substitute reference-tables file; empty means embedded.
	Tables string `yaml:"tables"`
	// FailOn is the verdict at or beyond which a match exits non-zero.
	FailOn string `yaml:"failOn"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Format:   FormatMarkdown,
	}
}

// Load resolves the configuration. path may be empty, in which case
// PORUTHAM_CONFIG is consulted; with neither, only defaults and the
// environment apply. The result is not validated: callers apply their flags
// first and then call Validate.
func Load(path string) (Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg = merge(cfg, fileCfg)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func merge(base, override Config) Config {
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		base.Format = override.Format
	}
	if override.Tables != "" {
		base.Tables = override.Tables
	}
	if override.FailOn != "" {
		base.FailOn = override.FailOn
	}
	return base
}

func (c *Config) applyEnvOverrides() {
	*c = merge(*c, Config{
		LogLevel: os.Getenv(logLevelEnv),
		Format:   os.Getenv(formatEnv),
		Tables:   os.Getenv(tablesEnv),
		FailOn:   os.Getenv(failOnEnv),
	})
}

// Validate checks the format and fail-on settings, normalizing their case.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != FormatJSON && c.Format != FormatMarkdown {
		return fmt.Errorf("%w: format %q (want json or markdown)", ErrInvalid, c.Format)
	}
	if c.FailOn != "" {
		v, ok := verdict.ParseVerdict(c.FailOn)
		if !ok {
			return fmt.Errorf("%w: fail-on %q is not a verdict", ErrInvalid, c.FailOn)
		}
		c.FailOn = string(v)
	}
	return nil
}
