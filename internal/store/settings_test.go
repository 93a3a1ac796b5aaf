package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

func TestSettingsLoadDefaultsWhenMissing(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))

	settings, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(settings, models.DefaultSettings()) {
		t.Errorf("missing file should load defaults, got %+v", settings)
	}
}

func TestSettingsSaveThenLoadRoundTrip(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "nested", "settings.json"))

	settings := models.DefaultSettings()
	settings.Appearance.Theme = "light"
	settings.Trading.DefaultQuantity = 42
	settings.Notifications.EmailAlerts = false

	if err := s.Save(settings); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, settings) {
		t.Errorf("loaded = %+v, want %+v", loaded, settings)
	}
}

func TestSettingsSaveOverwritesWholesale(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))

	first := models.DefaultSettings()
	first.Appearance.Theme = "light"
	if err := s.Save(first); err != nil {
		t.Fatal(err)
	}

	second := models.DefaultSettings()
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Appearance.Theme != second.Appearance.Theme {
		t.Errorf("earlier save leaked through: %+v", loaded)
	}
}

func TestSettingsLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewSettingsStore(path).Load(); err == nil {
		t.Error("corrupt file should return an error")
	}
}
