package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trading Journal Configuration

[api]
# Serve data from the built-in mock service instead of a remote backend
use_mock_data = true
# Remote backend base URL (used when use_mock_data = false)
base_url = "http://localhost:5000/api"
# AI suggestion service base URL
ai_base_url = "http://localhost:8000"
# Request timeout for remote calls
timeout = "10s"
# Simulated latency for mock service responses
mock_latency = "300ms"

[generator]
# Number of demo trades produced by "journal seed"
count = 100
# Entry dates are randomized over the last N days
day_range = 90
# Fraction of generated trades that close with a profit
win_probability = 0.6

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Also write logs to a rotating file
file = true
`

// writeTemplateConfig writes a commented config.toml so the user has
// something to edit on first run.
func writeTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
