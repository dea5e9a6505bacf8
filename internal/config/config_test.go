package config_test

import (
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/bookctl/internal/config"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("server URL = %q", cfg.Server.URL)
	}
	if !cfg.UI.DarkMode {
		t.Error("dark mode must default to true")
	}
	if cfg.UI.CompactWidth != 80 {
		t.Errorf("compact width = %d, want 80", cfg.UI.CompactWidth)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	cfg := &config.Config{
		Server: config.ServerConfig{URL: "https://books.example.net", TimeoutSeconds: 30},
		UI:     config.UIConfig{DarkMode: false, CompactWidth: 100},
	}
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Server.URL != "https://books.example.net" {
		t.Errorf("server URL = %q", loaded.Server.URL)
	}
	if loaded.Server.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d", loaded.Server.TimeoutSeconds)
	}
	if loaded.UI.DarkMode {
		t.Error("dark mode = true, want persisted false")
	}
	if loaded.UI.CompactWidth != 100 {
		t.Errorf("compact width = %d", loaded.UI.CompactWidth)
	}
}

func TestLoadFrom_TrailingSlashStripped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := &config.Config{Server: config.ServerConfig{URL: "http://books.local/"}}
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Server.URL != "http://books.local" {
		t.Errorf("server URL = %q, want trailing slash stripped", loaded.Server.URL)
	}
}

func TestUIConfig_Compact(t *testing.T) {
	ui := config.UIConfig{CompactWidth: 80}

	cases := []struct {
		width int
		want  bool
	}{
		{0, false}, // unknown width, assume wide
		{79, true},
		{80, false},
		{120, false},
	}
	for _, tc := range cases {
		if got := ui.Compact(tc.width); got != tc.want {
			t.Errorf("Compact(%d) = %v, want %v", tc.width, got, tc.want)
		}
	}
}
