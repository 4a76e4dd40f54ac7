// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ik5/oggstream/decoder"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "OGGSTREAM_"

// Config is the command line tool configuration.
type Config struct {
	Decoder DecoderConfig `yaml:"decoder"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DecoderConfig controls how input is fed to the decoder.
type DecoderConfig struct {
	ReadSize int `yaml:"read_size"` // bytes per WriteData call
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig contains the Prometheus listener settings.
type MetricsConfig struct {
	Address string `yaml:"address"` // empty disables the listener
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Decoder: DecoderConfig{ReadSize: decoder.MaxChunkSize},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides settings from OGGSTREAM_* variables, for example
// OGGSTREAM_LOG_LEVEL=debug. The result is not validated.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvPrefix + "READ_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREAD_SIZE: %w", EnvPrefix, err)
		}
		c.Decoder.ReadSize = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "METRICS_ADDRESS"); ok {
		c.Metrics.Address = v
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Decoder.Validate(); err != nil {
		return fmt.Errorf("decoder config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates decoder configuration. Reads larger than one chunk are
// split by the decoder anyway, so they are allowed.
func (d *DecoderConfig) Validate() error {
	if d.ReadSize < 1 {
		return fmt.Errorf("read_size must be positive, got %d", d.ReadSize)
	}
	return nil
}

// Validate validates logging configuration.
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [trace, debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}
