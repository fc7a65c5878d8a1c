package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ConfigPathEnvVar names an explicit config file, replacing the default location
const ConfigPathEnvVar = "TL_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
	envPath    string
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a loader reading the default config file and ./.env
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: DefaultConfigPath(),
		envPath:    ".env",
		lookupEnv:  os.LookupEnv,
	}
}

// WithConfigPath reads the TOML file at path instead of the default location
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvFile reads dotenv entries from path instead of ./.env
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envPath = path
	return l
}

// DefaultConfigPath returns TL_CONFIG when set, otherwise ~/.config/tl/config.toml
func DefaultConfigPath() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "tl", "config.toml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, when present
// 3. Override with .env entries not already in the environment
// 4. Override with environment variables
// 5. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := l.config.loadFromLookup(lookup); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadFile() error {
	if l.configPath == "" {
		return nil
	}
	if _, err := os.Stat(l.configPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if _, err := toml.DecodeFile(l.configPath, l.config); err != nil {
		return fmt.Errorf("parsing config file %s: %w", l.configPath, err)
	}
	return nil
}

func (l *Loader) readEnvFile() (map[string]string, error) {
	if l.envPath == "" {
		return nil, nil
	}

	values, err := godotenv.Read(l.envPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", l.envPath, err)
	}
	return values, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Store overrides
	Backend *string

	// Display overrides
	InputDateFormat   *string
	DisplayDateFormat *string
	RelativeDue       *bool

	// Defaults overrides
	Filter *string
	Sort   *string

	// Logging overrides
	LogLevel  *string
	LogFormat *string
	LogOutput *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Backend != nil {
		config.Store.Backend = *overrides.Backend
	}

	if overrides.InputDateFormat != nil {
		config.Display.InputDateFormat = *overrides.InputDateFormat
	}
	if overrides.DisplayDateFormat != nil {
		config.Display.DisplayDateFormat = *overrides.DisplayDateFormat
	}
	if overrides.RelativeDue != nil {
		config.Display.RelativeDue = *overrides.RelativeDue
	}

	if overrides.Filter != nil {
		config.Defaults.Filter = *overrides.Filter
	}
	if overrides.Sort != nil {
		config.Defaults.Sort = *overrides.Sort
	}

	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}
	if overrides.LogOutput != nil {
		config.Logging.Output = *overrides.LogOutput
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
