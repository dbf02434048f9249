// Package config provides Viper-based configuration loading for the area mapper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/mudmap/internal/layout"
)

// LayoutConfig holds cell geometry and search bounds.
type LayoutConfig struct {
	// CellWidth and CellHeight are the pixel size of one grid cell.
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`
	// MarginX and MarginY offset every room from the map origin.
	MarginX int `mapstructure:"margin_x"`
	MarginY int `mapstructure:"margin_y"`
	// MaxIterations caps the cells walked when connecting a section.
	MaxIterations int `mapstructure:"max_iterations"`
}

// Options converts the configuration to layout options.
func (l LayoutConfig) Options() layout.Options {
	return layout.Options{
		CellWidth:     l.CellWidth,
		CellHeight:    l.CellHeight,
		MarginX:       l.MarginX,
		MarginY:       l.MarginY,
		MaxIterations: l.MaxIterations,
	}
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// HintsConfig names the hint file applied to every area.
type HintsConfig struct {
	// File is a .yaml, .yml or .lua hint file. Empty means no hints.
	File string `mapstructure:"file"`
	// InstructionLimit caps the Lua instructions a hint script may run.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// SourceConfig selects the area reader.
type SourceConfig struct {
	// Format is "xml" for area XML exports or "zone" for zone YAML files.
	Format string `mapstructure:"format"`
}

// OutputConfig controls where layout documents go.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
	// Format is "yaml", "json" or "text".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Layout  LayoutConfig  `mapstructure:"layout"`
	Logging LoggingConfig `mapstructure:"logging"`
	Hints   HintsConfig   `mapstructure:"hints"`
	Source  SourceConfig  `mapstructure:"source"`
	Output  OutputConfig  `mapstructure:"output"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := c.Layout.Options().Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateHints(c.Hints); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Source.Format != "xml" && c.Source.Format != "zone" {
		errs = append(errs, fmt.Sprintf("source.format must be one of [xml, zone], got %q", c.Source.Format))
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateHints(h HintsConfig) error {
	if h.InstructionLimit < 0 {
		return fmt.Errorf("hints.instruction_limit must be >= 0, got %d", h.InstructionLimit)
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	var errs []string
	if o.Dir == "" {
		errs = append(errs, "output.dir must not be empty")
	}
	validFormats := map[string]bool{"yaml": true, "json": true, "text": true}
	if !validFormats[o.Format] {
		errs = append(errs, fmt.Sprintf("output.format must be one of [yaml, json, text], got %q", o.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults and environment only.
//
// Precondition: path must be empty or name a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with MUDMAP_ prefix
	v.SetEnvPrefix("MUDMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := layout.DefaultOptions()
	v.SetDefault("layout.cell_width", d.CellWidth)
	v.SetDefault("layout.cell_height", d.CellHeight)
	v.SetDefault("layout.margin_x", d.MarginX)
	v.SetDefault("layout.margin_y", d.MarginY)
	v.SetDefault("layout.max_iterations", d.MaxIterations)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("hints.file", "")
	v.SetDefault("hints.instruction_limit", 100000)

	v.SetDefault("source.format", "xml")

	v.SetDefault("output.dir", "maps")
	v.SetDefault("output.format", "yaml")
}
