// Package config loads the eventfill run configuration.
//
// A run works without any file: DefaultConfig describes the PHOC event
// details page. A YAML file overrides only the keys it names.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no -config
// flag is given.
const EnvConfigPath = "EVENTFILL_CONFIG"

// Config represents the configuration for one workflow run
type Config struct {
	// Remote debugging endpoint of the operator's browser
	DebugEndpoint string `yaml:"debug_endpoint" json:"debug_endpoint"`

	// Document title of the event details page
	WindowTitle string `yaml:"window_title" json:"window_title"`

	// Wait bounds
	Timeouts TimeoutConfig `yaml:"timeouts" json:"timeouts"`

	// AbortOnTimeout makes wait and driver failures abort the current tab
	// instead of being logged and skipped
	AbortOnTimeout bool `yaml:"abort_on_timeout" json:"abort_on_timeout"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Run report configuration
	Report ReportConfig `yaml:"report" json:"report"`

	// Selectors locating every control the workflow touches
	Selectors Selectors `yaml:"selectors" json:"selectors"`

	// Path the configuration was loaded from, empty for defaults
	Path string `yaml:"-" json:"-"`
}

// TimeoutConfig bounds the blocking steps of a run
type TimeoutConfig struct {
	Clickable    time.Duration `yaml:"clickable" json:"clickable"`
	Content      time.Duration `yaml:"content" json:"content"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
	Settle       time.Duration `yaml:"settle" json:"settle"`
	Connect      time.Duration `yaml:"connect" json:"connect"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Verbosity controls console output: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// ReportConfig defines run report generation
type ReportConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// Default values
const (
	DefaultDebugEndpoint = "http://127.0.0.1:9222"
	DefaultWindowTitle   = "Piedmont Hiking and Outing Club - Event details"

	DefaultClickableTimeout = 30 * time.Second
	DefaultContentTimeout   = 10 * time.Second
	DefaultPollInterval     = 250 * time.Millisecond
	DefaultSettle           = 1 * time.Second
	DefaultConnectTimeout   = 30 * time.Second
)

var validVerbosity = map[string]bool{
	"quiet":   true,
	"normal":  true,
	"verbose": true,
	"debug":   true,
}

// DefaultConfig returns the configuration for the PHOC event details form
func DefaultConfig() *Config {
	return &Config{
		DebugEndpoint: DefaultDebugEndpoint,
		WindowTitle:   DefaultWindowTitle,
		Timeouts: TimeoutConfig{
			Clickable:    DefaultClickableTimeout,
			Content:      DefaultContentTimeout,
			PollInterval: DefaultPollInterval,
			Settle:       DefaultSettle,
			Connect:      DefaultConnectTimeout,
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
		Report: ReportConfig{
			Enabled:   false,
			OutputDir: "eventfill-report",
		},
		Selectors: DefaultSelectors(),
	}
}

// Load reads a YAML file over DefaultConfig. An empty path falls back to
// $EVENTFILL_CONFIG and then to the defaults alone.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.Path = path

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DebugEndpoint == "" {
		return fmt.Errorf("debug_endpoint is required")
	}
	if c.WindowTitle == "" {
		return fmt.Errorf("window_title is required")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"timeouts.clickable", c.Timeouts.Clickable},
		{"timeouts.content", c.Timeouts.Content},
		{"timeouts.poll_interval", c.Timeouts.PollInterval},
		{"timeouts.connect", c.Timeouts.Connect},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if c.Timeouts.Settle < 0 {
		return fmt.Errorf("timeouts.settle must not be negative, got %s", c.Timeouts.Settle)
	}

	if !validVerbosity[c.Logging.Verbosity] {
		return fmt.Errorf("invalid verbosity: %s (must be quiet, normal, verbose or debug)", c.Logging.Verbosity)
	}

	if c.Report.Enabled && c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required when reports are enabled")
	}

	return c.Selectors.Validate()
}
