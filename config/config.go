// Package config loads the arcstd configuration from defaults, an optional
// YAML file and ARCSTD_ environment variables, through spf13/viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "ARCSTD"

// Config represents the complete arcstd configuration
type Config struct {
	// DocPath is a directory of CoNLL-U/JSON docs or a sqlite file
	DocPath string        `mapstructure:"doc_path"`
	Parse   ParseConfig   `mapstructure:"parse"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ParseConfig controls the batch driver
type ParseConfig struct {
	// BatchSize is the maximum number of sentences per predictor call
	BatchSize int `mapstructure:"batch_size"`
	// Shards is the number of concurrent batch drivers
	Shards int `mapstructure:"shards"`
	// Predictor is one of predict.Names()
	Predictor string `mapstructure:"predictor"`
	// NoiseRate is the fraction of proposals replaced with illegal ones
	NoiseRate float64 `mapstructure:"noise_rate"`
	Seed      int64   `mapstructure:"seed"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// Dir receives arcstd.log; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			BatchSize: 32,
			Shards:    1,
			Predictor: "oracle",
			NoiseRate: 0,
			Seed:      1,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers the defaults on v. Every key must have a default
// for its environment variable to be seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("doc_path", defaults.DocPath)

	v.SetDefault("parse.batch_size", defaults.Parse.BatchSize)
	v.SetDefault("parse.shards", defaults.Parse.Shards)
	v.SetDefault("parse.predictor", defaults.Parse.Predictor)
	v.SetDefault("parse.noise_rate", defaults.Parse.NoiseRate)
	v.SetDefault("parse.seed", defaults.Parse.Seed)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
}

// New returns a viper with the defaults, the environment and, when it
// exists, the config file. An empty cfgFile means ConfigFile(); only an
// explicit cfgFile must exist.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	// ARCSTD_PARSE_BATCH_SIZE for parse.batch_size
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	v.SetConfigFile(ConfigFile())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read config %s: %w", ConfigFile(), err)
		}
	}
	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arcstd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arcstd"
	}
	return filepath.Join(home, ".config", "arcstd")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
