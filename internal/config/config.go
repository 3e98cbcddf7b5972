// Package config loads tale configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/magefree/mage-tale-go/internal/game/characters"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. TALE_LOGGING_LEVEL.
const EnvPrefix = "TALE"

// Config is the full application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Deck      DeckConfig      `mapstructure:"deck"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// LoggingConfig selects the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig locates the content catalog. An empty path selects the built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// DirectoryConfig mirrors characters.Policy.
type DirectoryConfig struct {
	EnforceSinglePlayer bool `mapstructure:"enforce_single_player"`
	EmitChangeEvents    bool `mapstructure:"emit_change_events"`
	MaterializeDefaults bool `mapstructure:"materialize_defaults"`
}

// Policy converts the directory section into a characters.Policy.
func (d DirectoryConfig) Policy() characters.Policy {
	return characters.Policy{
		EnforceSinglePlayer: d.EnforceSinglePlayer,
		EmitChangeEvents:    d.EmitChangeEvents,
		MaterializeDefaults: d.MaterializeDefaults,
	}
}

// DeckConfig controls deck shuffling. Seed 0 picks a random seed.
type DeckConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

// MetricsConfig toggles OpenTelemetry metrics.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("catalog.path", "")
	v.SetDefault("directory.enforce_single_player", false)
	v.SetDefault("directory.emit_change_events", true)
	v.SetDefault("directory.materialize_defaults", false)
	v.SetDefault("deck.seed", 0)
	v.SetDefault("metrics.enabled", false)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic("config: defaults do not load: " + err.Error())
	}
	return cfg
}

// Load reads the YAML file at path, if it exists, over the defaults and
// applies TALE_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown logging levels and formats.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown logging.format %q", c.Logging.Format)
	}
	return nil
}
