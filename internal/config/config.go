// Package config loads decicalc settings from flags, environment variables
// and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables, as in DECICALC_FORMAT.
	EnvPrefix = "DECICALC"
	// FileName is the config file name searched for when no file is given.
	FileName = "decicalc"

	// FormatSci prints numbers as <mag>e<exp>, as in 12e-1.
	FormatSci = "sci"
	// FormatPlain prints numbers in plain notation, as in 1.2.
	FormatPlain = "plain"
)

// Config holds the calculator settings.
type Config struct {
	// Format is the output notation, either "sci" (12e-1) or "plain" (1.2).
	Format string `mapstructure:"format"`
	// Precision is the number of digits after the decimal point in plain
	// output. -1 prints the exact value.
	Precision int `mapstructure:"precision"`
	// Prompt is shown before each line of the interactive session.
	Prompt string `mapstructure:"prompt"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
}

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("format", FormatSci)
	v.SetDefault("precision", -1)
	v.SetDefault("prompt", "> ")
	v.SetDefault("debug", false)
}

// New returns a viper instance with defaults and environment variables
// set up. Flags may be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (configFile, or decicalc.yaml in the working directory)
// 3. Environment variables (DECICALC_ prefix)
// 4. Flags bound to v
//
// A missing decicalc.yaml is not an error; a missing configFile is.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatSci, FormatPlain:
	default:
		return fmt.Errorf("unknown format %q (supported: %s, %s)", c.Format, FormatSci, FormatPlain)
	}
	if c.Precision < -1 {
		return fmt.Errorf("precision must be -1 or greater, got %d", c.Precision)
	}
	return nil
}
