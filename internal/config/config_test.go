package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFirstRunWritesTemplateAndDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.API.UseMockData {
		t.Error("default should use mock data")
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %s", cfg.API.Timeout)
	}
	if cfg.Generator.Count != 100 || cfg.Generator.WinProbability != 0.6 {
		t.Errorf("generator defaults = %+v", cfg.Generator)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("first run should write a config template: %v", err)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "[api]\nuse_mock_data = false\nbase_url = \"http://backend:9000/api\"\n\n[generator]\ncount = 5\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.UseMockData {
		t.Error("use_mock_data override ignored")
	}
	if cfg.API.BaseURL != "http://backend:9000/api" {
		t.Errorf("BaseURL = %s", cfg.API.BaseURL)
	}
	if cfg.Generator.Count != 5 {
		t.Errorf("Count = %d", cfg.Generator.Count)
	}
	// Unset keys keep their defaults.
	if cfg.Generator.DayRange != 90 {
		t.Errorf("DayRange = %d", cfg.Generator.DayRange)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JOURNAL_API_BASE_URL", "http://env-host/api")
	t.Setenv("JOURNAL_USE_MOCK_DATA", "false")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://env-host/api" {
		t.Errorf("BaseURL = %s", cfg.API.BaseURL)
	}
	if cfg.API.UseMockData {
		t.Error("JOURNAL_USE_MOCK_DATA=false ignored")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"negative latency", func(c *Config) { c.API.MockLatency = -time.Second }},
		{"remote without url", func(c *Config) { c.API.UseMockData = false; c.API.BaseURL = "" }},
		{"negative count", func(c *Config) { c.Generator.Count = -1 }},
		{"zero day range", func(c *Config) { c.Generator.DayRange = 0 }},
		{"probability above one", func(c *Config) { c.Generator.WinProbability = 1.5 }},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
