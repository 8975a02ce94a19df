// Package config resolves reaction-goat settings.
//
// Precedence, lowest first: built-in defaults, the YAML file, environment
// variables prefixed RG_ (a .env file in the working directory is loaded into
// the environment first), then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gkobilansky/reaction-goat/internal/game"
	"github.com/gkobilansky/reaction-goat/internal/store"
)

const EnvPrefix = "RG_"

// MaxDelayLimitMs caps both delay settings at one hour.
const MaxDelayLimitMs = 60 * 60 * 1000

type Config struct {
	DBPath    string `yaml:"db_path" env:"DB_PATH"`
	Profile   string `yaml:"profile" env:"PROFILE"`
	Ephemeral bool   `yaml:"ephemeral" env:"EPHEMERAL"`

	MinDelayMs int `yaml:"min_delay_ms" env:"MIN_DELAY_MS"`
	MaxDelayMs int `yaml:"max_delay_ms" env:"MAX_DELAY_MS"`

	NeutralColor string `yaml:"neutral_color" env:"NEUTRAL_COLOR"`
	GoColor      string `yaml:"go_color" env:"GO_COLOR"`
	Sound        bool   `yaml:"sound" env:"SOUND"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"LOG_FILE"`

	Messages game.Messages `yaml:"messages"`
}

func Default() *Config {
	return &Config{
		DBPath:       "./rg.db",
		Profile:      store.DefaultKey,
		MinDelayMs:   int(game.DefaultMinDelay / time.Millisecond),
		MaxDelayMs:   int(game.DefaultMaxDelay / time.Millisecond),
		NeutralColor: "#202124",
		GoColor:      "#D4AF37",
		LogLevel:     "info",
		Messages:     game.DefaultMessages(),
	}
}

// Load reads the optional YAML file at path and applies RG_ environment
// overrides from the process environment.
func Load(path string) (*Config, error) {
	return load(path, nil)
}

func load(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotenv loads the given .env files into the process environment.
// Missing files are skipped; variables already set are kept.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.MinDelayMs <= 0 {
		return fmt.Errorf("min_delay_ms must be positive, got %d", c.MinDelayMs)
	}
	if c.MinDelayMs > MaxDelayLimitMs || c.MaxDelayMs > MaxDelayLimitMs {
		return fmt.Errorf("delays must not exceed %d ms, got min_delay_ms=%d max_delay_ms=%d", MaxDelayLimitMs, c.MinDelayMs, c.MaxDelayMs)
	}
	if c.MaxDelayMs <= c.MinDelayMs {
		return fmt.Errorf("max_delay_ms (%d) must be greater than min_delay_ms (%d)", c.MaxDelayMs, c.MinDelayMs)
	}
	if !c.Ephemeral && c.DBPath == "" {
		return errors.New("db_path is required unless ephemeral")
	}
	if tcell.GetColor(c.NeutralColor) == tcell.ColorDefault {
		return fmt.Errorf("unknown neutral_color %q", c.NeutralColor)
	}
	if tcell.GetColor(c.GoColor) == tcell.ColorDefault {
		return fmt.Errorf("unknown go_color %q", c.GoColor)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func (c *Config) MinDelay() time.Duration {
	return time.Duration(c.MinDelayMs) * time.Millisecond
}

func (c *Config) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
