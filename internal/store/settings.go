package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// SettingsStore persists user settings as a single flat JSON document.
// A missing file implies defaults; Save overwrites the document wholesale.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a settings store backed by the given file path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load reads the settings document, returning defaults when the file does
// not exist yet.
func (s *SettingsStore) Load() (models.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, errors.Wrap(err, "reading settings")
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, errors.Wrap(err, "parsing settings")
	}
	return settings, nil
}

// Save overwrites the settings document wholesale.
func (s *SettingsStore) Save(settings models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding settings")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrap(err, "writing settings")
	}
	return nil
}
