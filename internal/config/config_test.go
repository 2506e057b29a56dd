package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "schedbot.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendSimulated {
		t.Errorf("Backend = %q, want simulated default", cfg.Backend)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.SearchResults != 3 {
		t.Errorf("SearchResults = %d, want 3", cfg.SearchResults)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedbot.yaml")
	content := `
model: llama-3.3-70b-versatile
timezone: Asia/Kolkata
backend: google
google:
  account: work
  calendar_id: team@example.com
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Backend != BackendGoogle || cfg.Google.Account != "work" {
		t.Errorf("google backend config = %q/%+v", cfg.Backend, cfg.Google)
	}
	if cfg.Google.CalendarID != "team@example.com" {
		t.Errorf("CalendarID = %q", cfg.Google.CalendarID)
	}
	// Normalize fills what the file omitted.
	if cfg.SearchResults != 3 {
		t.Errorf("SearchResults = %d, want normalized default 3", cfg.SearchResults)
	}
}

func TestNormalize_UnknownValuesFallBack(t *testing.T) {
	cfg := &Config{Backend: "outlook", LogLevel: "loud"}
	cfg.Normalize()

	if cfg.Backend != BackendSimulated {
		t.Errorf("Backend = %q, want fallback to simulated", cfg.Backend)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want fallback to info", cfg.LogLevel)
	}
	if cfg.Google.CalendarID != "primary" {
		t.Errorf("CalendarID = %q, want primary", cfg.Google.CalendarID)
	}
}

func TestValidate_GoogleBackendNeedsAccount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = BackendGoogle

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "google.account") {
		t.Errorf("Validate() = %v, want account requirement", err)
	}

	cfg.Google.Account = "work"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil with account set", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedbot.yaml")

	cfg := DefaultConfig()
	cfg.Model = "custom-model"
	cfg.Google.Account = "personal"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Model != "custom-model" || loaded.Google.Account != "personal" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}
