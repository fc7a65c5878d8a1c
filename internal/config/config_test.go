package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	config := NewConfig()

	assert.Equal(t, BackendMemory, config.Store.Backend)
	assert.Equal(t, "2006-01-02", config.Display.InputDateFormat)
	assert.Equal(t, domain.FilterAll, config.DefaultFilter())
	assert.Equal(t, domain.SortByPriority, config.DefaultSort())
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, 10*time.Second, config.Application.Timeout)
	assert.NoError(t, config.Validate())
}

func TestConfig_LoadFromLookup(t *testing.T) {
	config := NewConfig()

	err := config.loadFromLookup(lookupFrom(map[string]string{
		"TL_STORE_BACKEND":        "SQLite",
		"TL_DATE_INPUT_FORMAT":    "02/01/2006",
		"TL_DATE_DISPLAY_FORMAT":  "Jan 2, 2006",
		"TL_DISPLAY_RELATIVE_DUE": "true",
		"TL_DEFAULT_FILTER":       "incomplete",
		"TL_DEFAULT_SORT":         "dueDate",
		"TL_LOG_LEVEL":            "debug",
		"TL_LOG_FORMAT":           "json",
		"TL_LOG_OUTPUT":           "discard",
		"TL_APP_TIMEOUT":          "3s",
		"TL_APP_VERBOSE":          "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, config.Store.Backend)
	assert.Equal(t, "02/01/2006", config.Display.InputDateFormat)
	assert.Equal(t, "Jan 2, 2006", config.Display.DisplayDateFormat)
	assert.True(t, config.Display.RelativeDue)
	assert.Equal(t, domain.FilterIncomplete, config.DefaultFilter())
	assert.Equal(t, domain.SortByDueDate, config.DefaultSort())
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
	assert.Equal(t, "discard", config.Logging.Output)
	assert.Equal(t, 3*time.Second, config.Application.Timeout)
	assert.True(t, config.Application.Verbose)
	assert.NoError(t, config.Validate())
}

func TestConfig_LoadFromLookup_MalformedValuesKeepDefaults(t *testing.T) {
	config := NewConfig()

	err := config.loadFromLookup(lookupFrom(map[string]string{
		"TL_APP_TIMEOUT":          "soon",
		"TL_DISPLAY_RELATIVE_DUE": "maybe",
	}))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, config.Application.Timeout)
	assert.False(t, config.Display.RelativeDue)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		expectedField string
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "postgres" }, "store.backend"},
		{"empty input format", func(c *Config) { c.Display.InputDateFormat = "" }, "display.input_date_format"},
		{"input format without day", func(c *Config) { c.Display.InputDateFormat = "2006-01" }, "display.input_date_format"},
		{"empty display format", func(c *Config) { c.Display.DisplayDateFormat = " " }, "display.display_date_format"},
		{"unknown filter", func(c *Config) { c.Defaults.Filter = "done" }, "defaults.filter"},
		{"unknown sort", func(c *Config) { c.Defaults.Sort = "name" }, "defaults.sort"},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"zero timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewConfig()
			tt.mutate(config)

			err := config.Validate()

			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.expectedField, configErr.Field)
			assert.Contains(t, err.Error(), tt.expectedField+": ")
		})
	}
}

func TestConfig_LoggerOptions(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		verbose       bool
		expectedLevel string
	}{
		{"quiet default", "warn", false, "warn"},
		{"verbose lowers warn", "warn", true, "info"},
		{"verbose lowers error", "error", true, "info"},
		{"verbose keeps debug", "debug", true, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewConfig()
			config.Logging.Level = tt.level
			config.Application.Verbose = tt.verbose

			opts := config.LoggerOptions()

			assert.Equal(t, tt.expectedLevel, opts.Level)
			assert.Equal(t, "text", opts.Format)
			assert.Equal(t, "stderr", opts.Output)
		})
	}
}

func TestFallbackParsers(t *testing.T) {
	assert.Equal(t, 2*time.Minute, ParseDurationWithFallback("2m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("two", time.Second))
	assert.True(t, ParseBoolWithFallback("yes", true))
	assert.False(t, ParseBoolWithFallback("false", true))
}
