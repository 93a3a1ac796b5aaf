// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Generator GeneratorConfig `mapstructure:"generator"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// APIConfig selects and parameterizes the journal backend. UseMockData is
// evaluated once when the client is constructed; callers never branch on it.
type APIConfig struct {
	UseMockData bool          `mapstructure:"use_mock_data"`
	BaseURL     string        `mapstructure:"base_url"`
	AIBaseURL   string        `mapstructure:"ai_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MockLatency time.Duration `mapstructure:"mock_latency"`
}

// GeneratorConfig holds demo-data generation defaults.
type GeneratorConfig struct {
	Count          int     `mapstructure:"count"`
	DayRange       int     `mapstructure:"day_range"`
	WinProbability float64 `mapstructure:"win_probability"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trading-journal"
	}
	return filepath.Join(home, ".config", "trading-journal")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			UseMockData: true,
			BaseURL:     "http://localhost:5000/api",
			AIBaseURL:   "http://localhost:8000",
			Timeout:     10 * time.Second,
			MockLatency: 300 * time.Millisecond,
		},
		Generator: GeneratorConfig{
			Count:          100,
			DayRange:       90,
			WinProbability: 0.6,
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "2006-01-02",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  true,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	defaults := Default()
	v.SetDefault("api.use_mock_data", defaults.API.UseMockData)
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.ai_base_url", defaults.API.AIBaseURL)
	v.SetDefault("api.timeout", defaults.API.Timeout)
	v.SetDefault("api.mock_latency", defaults.API.MockLatency)
	v.SetDefault("generator.count", defaults.Generator.Count)
	v.SetDefault("generator.day_range", defaults.Generator.DayRange)
	v.SetDefault("generator.win_probability", defaults.Generator.WinProbability)
	v.SetDefault("ui.color_enabled", defaults.UI.ColorEnabled)
	v.SetDefault("ui.date_format", defaults.UI.DateFormat)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		// First run, write a template so the user has something to edit.
		if err := writeTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JOURNAL_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("JOURNAL_AI_BASE_URL"); v != "" {
		cfg.API.AIBaseURL = v
	}
	if v := os.Getenv("JOURNAL_USE_MOCK_DATA"); v != "" {
		cfg.API.UseMockData = v == "true" || v == "1"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.MockLatency < 0 {
		return fmt.Errorf("api.mock_latency must be non-negative")
	}
	if !c.API.UseMockData && c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required when mock data is disabled")
	}
	if c.Generator.Count < 0 {
		return fmt.Errorf("generator.count must be non-negative")
	}
	if c.Generator.DayRange <= 0 {
		return fmt.Errorf("generator.day_range must be positive")
	}
	if c.Generator.WinProbability < 0 || c.Generator.WinProbability > 1 {
		return fmt.Errorf("generator.win_probability must be between 0 and 1")
	}
	return nil
}
