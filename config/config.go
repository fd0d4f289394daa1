// Package config holds the run settings and loads optional overrides from a
// YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values used when no config file is present or a field is absent.
const (
	DefaultPath       = "covidstats.yaml"
	DefaultCountry    = "Afghanistan"
	DefaultInput      = "owid-covid-data.csv"
	DefaultOutputDir  = "."
	DefaultReportFile = "covid_analysis_results.txt"
	DefaultLogLevel   = "info"
)

// Config is the full set of run settings.
type Config struct {
	// Country is matched exactly against the location column.
	Country string `yaml:"country"`

	// Input is the path of the delimited source table.
	Input string `yaml:"input"`

	// Delimiter is the field separator of Input. Defaults to a comma.
	Delimiter string `yaml:"delimiter"`

	// OutputDir receives the report, the charts and any optional exports.
	OutputDir string `yaml:"output_dir"`

	// ReportFile is the name of the text report inside OutputDir.
	ReportFile string `yaml:"report_file"`

	// SeriesCSV, when set, names a CSV export of the processed series.
	SeriesCSV string `yaml:"series_csv"`

	// MetricsFile, when set, names a Prometheus textfile of the summary.
	MetricsFile string `yaml:"metrics_file"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Country:    DefaultCountry,
		Input:      DefaultInput,
		Delimiter:  ",",
		OutputDir:  DefaultOutputDir,
		ReportFile: DefaultReportFile,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the built-in configuration
// when path is DefaultPath and that file does not exist. Any other missing
// path is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks required fields and enums.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Country) == "" {
		return fmt.Errorf("country is required")
	}
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.ReportFile == "" {
		return fmt.Errorf("report_file is required")
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Comma returns the delimiter as a rune.
func (c *Config) Comma() rune {
	return []rune(c.Delimiter)[0]
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
