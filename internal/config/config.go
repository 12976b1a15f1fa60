// Package config loads runtime settings from defaults, an optional YAML
// file and ROGUELIKE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the game reads.
const EnvPrefix = "ROGUELIKE_"

// Config holds every tunable setting.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed" env:"SEED"`
	// Generator picks the map layout: "rooms" or "bsp".
	Generator string `yaml:"generator" env:"GENERATOR"`
	// SavePath is where Escape writes the saved game.
	SavePath string `yaml:"savePath" env:"SAVE_PATH"`
	// RecordsPath is the SQLite run history. Empty disables it.
	RecordsPath string `yaml:"recordsPath" env:"RECORDS_PATH"`

	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string `yaml:"path" env:"PATH"`
	Level string `yaml:"level" env:"LEVEL"`
}

// TelemetryConfig controls trace export to Honeycomb over OTLP.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
	APIKey   string `yaml:"apiKey" env:"API_KEY"`
	Dataset  string `yaml:"dataset" env:"DATASET"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Generator:   "rooms",
		SavePath:    "savegame.json",
		RecordsPath: "records.db",
		Log: LogConfig{
			Path:  "roguelike.log",
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Endpoint: "https://api.honeycomb.io",
			Dataset:  "roguelike",
		},
	}
}

// Load merges defaults, the config file and the environment. path may be
// empty; a missing file named explicitly is an error. The result is not
// validated, since command-line flags may still override it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	switch c.Generator {
	case "rooms", "bsp":
	default:
		errs = append(errs, fmt.Errorf("generator must be rooms or bsp, got %q", c.Generator))
	}
	if c.SavePath == "" {
		errs = append(errs, errors.New("save path must not be empty"))
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		errs = append(errs, errors.New("telemetry endpoint must be set when telemetry is enabled"))
	}
	return errors.Join(errs...)
}

// TelemetryHeaders returns the OTLP headers Honeycomb expects.
func (c Config) TelemetryHeaders() map[string]string {
	if c.Telemetry.APIKey == "" {
		return nil
	}
	return map[string]string{
		"x-honeycomb-team":    c.Telemetry.APIKey,
		"x-honeycomb-dataset": c.Telemetry.Dataset,
	}
}
