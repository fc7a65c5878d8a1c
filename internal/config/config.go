package config

import (
	"strconv"
	"strings"
	"time"

	"task-list/internal/domain"
	"task-list/internal/logging"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the task list application
type Config struct {
	Store       StoreConfig       `toml:"store"`
	Display     DisplayConfig     `toml:"display"`
	Defaults    DefaultsConfig    `toml:"defaults"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
}

// StoreConfig selects the volatile collection backend
type StoreConfig struct {
	Backend string `toml:"backend" env:"TL_STORE_BACKEND"`
}

// DisplayConfig holds date parsing and formatting configuration
type DisplayConfig struct {
	InputDateFormat   string `toml:"input_date_format" env:"TL_DATE_INPUT_FORMAT"`
	DisplayDateFormat string `toml:"display_date_format" env:"TL_DATE_DISPLAY_FORMAT"`
	RelativeDue       bool   `toml:"relative_due" env:"TL_DISPLAY_RELATIVE_DUE"`
}

// DefaultsConfig holds the view a new session starts with
type DefaultsConfig struct {
	Filter string `toml:"filter" env:"TL_DEFAULT_FILTER"`
	Sort   string `toml:"sort" env:"TL_DEFAULT_SORT"`
}

// LoggingConfig holds structured logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" env:"TL_LOG_LEVEL"`
	Format string `toml:"format" env:"TL_LOG_FORMAT"`
	Output string `toml:"output" env:"TL_LOG_OUTPUT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TL_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TL_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendMemory,
		},
		Display: DisplayConfig{
			InputDateFormat:   domain.DateLayout,
			DisplayDateFormat: domain.DateLayout,
			RelativeDue:       false,
		},
		Defaults: DefaultsConfig{
			Filter: string(domain.FilterAll),
			Sort:   string(domain.SortByPriority),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		Application: ApplicationConfig{
			Timeout: 10 * time.Second,
			Verbose: false,
		},
	}
}

// DefaultFilter returns the configured starting filter mode
func (c *Config) DefaultFilter() domain.FilterMode {
	f, err := domain.ParseFilterMode(c.Defaults.Filter)
	if err != nil {
		return domain.FilterAll
	}
	return f
}

// DefaultSort returns the configured starting sort mode
func (c *Config) DefaultSort() domain.SortMode {
	s, err := domain.ParseSortMode(c.Defaults.Sort)
	if err != nil {
		return domain.SortByPriority
	}
	return s
}

// LoggerOptions returns the logger settings. Verbose raises a quieter level to info.
func (c *Config) LoggerOptions() logging.Options {
	level := c.Logging.Level
	if c.Application.Verbose && logging.ParseLevel(level) > logging.ParseLevel("info") {
		level = "info"
	}
	return logging.Options{
		Level:  level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}

// loadFromLookup applies every TL_* key that lookup can resolve. Malformed
// numbers, booleans and durations keep the current value.
func (c *Config) loadFromLookup(lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	// Store configuration
	if backend := get("TL_STORE_BACKEND"); backend != "" {
		c.Store.Backend = strings.ToLower(backend)
	}

	// Display configuration
	if format := get("TL_DATE_INPUT_FORMAT"); format != "" {
		c.Display.InputDateFormat = format
	}
	if format := get("TL_DATE_DISPLAY_FORMAT"); format != "" {
		c.Display.DisplayDateFormat = format
	}
	if relative := get("TL_DISPLAY_RELATIVE_DUE"); relative != "" {
		c.Display.RelativeDue = ParseBoolWithFallback(relative, c.Display.RelativeDue)
	}

	// Defaults configuration
	if filter := get("TL_DEFAULT_FILTER"); filter != "" {
		c.Defaults.Filter = filter
	}
	if sort := get("TL_DEFAULT_SORT"); sort != "" {
		c.Defaults.Sort = sort
	}

	// Logging configuration
	if level := get("TL_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := get("TL_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if output := get("TL_LOG_OUTPUT"); output != "" {
		c.Logging.Output = output
	}

	// Application configuration
	if timeout := get("TL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := get("TL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate store configuration
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return &ConfigError{Field: "store.backend", Message: "backend must be memory or sqlite"}
	}

	// Validate display configuration
	if !isDateLayout(c.Display.InputDateFormat) {
		return &ConfigError{Field: "display.input_date_format", Message: "input date format must contain a year, month and day"}
	}
	if strings.TrimSpace(c.Display.DisplayDateFormat) == "" {
		return &ConfigError{Field: "display.display_date_format", Message: "display date format cannot be empty"}
	}

	// Validate defaults configuration
	if _, err := domain.ParseFilterMode(c.Defaults.Filter); err != nil {
		return &ConfigError{Field: "defaults.filter", Message: "filter must be all, complete or incomplete"}
	}
	if _, err := domain.ParseSortMode(c.Defaults.Sort); err != nil {
		return &ConfigError{Field: "defaults.sort", Message: "sort must be priority or dueDate"}
	}

	// Validate logging configuration
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be debug, info, warn or error"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "format must be text or json"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// isDateLayout checks that layout round-trips a calendar date
func isDateLayout(layout string) bool {
	if strings.TrimSpace(layout) == "" {
		return false
	}
	ref := time.Date(2031, time.November, 27, 0, 0, 0, 0, time.UTC)
	parsed, err := time.ParseInLocation(layout, ref.Format(layout), time.UTC)
	return err == nil && parsed.Equal(ref)
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
