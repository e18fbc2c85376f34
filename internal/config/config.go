// Package config holds the toolkit configuration: the valid-range table,
// the imputation parameters, logging and output paths. Values come from
// built-in defaults, overridden by an optional YAML file, overridden by
// LOGGAP_* environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"loggap/internal/cleaning"
)

// Config represents the complete toolkit configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Impute  ImputeConfig  `yaml:"impute" envconfig:"IMPUTE"`
	// Ranges maps channel name to its valid bounds. Empty means the
	// built-in table for standard Kansas Geological Survey channels.
	Ranges map[string]RangeBounds `yaml:"ranges" ignored:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output string `yaml:"output" envconfig:"OUTPUT"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
}

// ImputeConfig contains the gap-filling parameters
type ImputeConfig struct {
	// K is the neighbor count for the KNN and progressive strategies.
	K int `yaml:"k" envconfig:"K" validate:"min=1"`
	// MaxGap is the longest interior run interpolation will fill.
	MaxGap int `yaml:"max_gap" envconfig:"MAX_GAP" validate:"min=1"`
	// ColumnOrder pins the progressive imputer's fill order; empty means
	// frame column order.
	ColumnOrder []string `yaml:"column_order" envconfig:"COLUMN_ORDER"`
	// MaxConcurrency bounds concurrently running strategies; 0 is
	// unlimited.
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"min=0"`
	// Timeout bounds one pipeline run.
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"min=1s"`
}

// RangeBounds is the YAML form of a channel's valid range. A nil side
// means unbounded in that direction.
type RangeBounds struct {
	Lower *float64 `yaml:"lower"`
	Upper *float64 `yaml:"upper"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Paths: PathsConfig{
			OutputDir: "out",
		},
		Impute: ImputeConfig{
			K:              4,
			MaxGap:         6,
			MaxConcurrency: 5,
			Timeout:        10 * time.Minute,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// LOGGAP_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("LOGGAP", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration, including range bound ordering.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	for col, bounds := range c.Ranges {
		if !bounds.toBounds().IsValid() {
			return fmt.Errorf("ranges.%s: lower bound above upper bound", col)
		}
	}
	return nil
}

// RangeTable returns the configured valid-range table, falling back to
// the built-in one when no ranges are configured.
func (c *Config) RangeTable() cleaning.RangeTable {
	if len(c.Ranges) == 0 {
		return cleaning.DefaultRangeTable()
	}
	table := make(cleaning.RangeTable, len(c.Ranges))
	for col, bounds := range c.Ranges {
		table[col] = bounds.toBounds()
	}
	return table
}

func (b RangeBounds) toBounds() cleaning.Bounds {
	out := cleaning.Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}
	if b.Lower != nil {
		out.Lower = *b.Lower
	}
	if b.Upper != nil {
		out.Upper = *b.Upper
	}
	return out
}
