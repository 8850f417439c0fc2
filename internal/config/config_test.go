package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg == nil {
		t.Fatal("defaultConfig() returned nil")
	}
	if cfg.QueuePath == "" {
		t.Error("Expected QueuePath to have a default")
	}
	if !cfg.System.Enabled {
		t.Error("Expected System.Enabled to default to true")
	}
	if cfg.Ntfy.Enabled {
		t.Error("Expected Ntfy.Enabled to default to false")
	}
	if cfg.Ntfy.URL != "https://ntfy.sh" {
		t.Errorf("Expected Ntfy.URL to be https://ntfy.sh, got %q", cfg.Ntfy.URL)
	}
	if got := cfg.PopupTimeout().Seconds(); got != 10 {
		t.Errorf("Expected default popup timeout of 10s, got %vs", got)
	}
	if !cfg.PopupEnabled() {
		t.Error("Expected popups to be enabled by default")
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Setenv("CLAUDEQ_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg := Load()
	if cfg == nil {
		t.Fatal("Load() returned nil")
	}
	if cfg.QueuePath == "" {
		t.Error("Expected QueuePath to be set to at least the default value")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("queue_path: /tmp/q.org\npopup:\n  timeout_seconds: 3\n  enabled: false\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLAUDEQ_CONFIG", path)

	cfg := Load()
	if cfg.QueuePath != "/tmp/q.org" {
		t.Errorf("Expected queue path override, got %q", cfg.QueuePath)
	}
	if cfg.PopupEnabled() {
		t.Error("Expected popups to be disabled")
	}
	if got := cfg.PopupTimeout().Seconds(); got != 3 {
		t.Errorf("Expected popup timeout of 3s, got %vs", got)
	}
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLAUDEQ_CONFIG", path)

	cfg := Load()
	if cfg.QueuePath != defaultConfig().QueuePath {
		t.Errorf("Expected default queue path, got %q", cfg.QueuePath)
	}
}

func TestQueuePathEnvOverride(t *testing.T) {
	t.Setenv("CLAUDEQ_QUEUE_PATH", "/custom/q.org")
	cfg := defaultConfig()
	if got := cfg.ExpandedQueuePath(); got != "/custom/q.org" {
		t.Errorf("Expected env override, got %q", got)
	}
}
