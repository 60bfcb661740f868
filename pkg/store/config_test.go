package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	body := "path: " + filepath.Join(dir, "db") + "\nweekends: false\nlog:\n  level: debug\n  file: " + filepath.Join(dir, "worklog.log") + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".worklog.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WORKLOG_CONFIG_PATH", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("path = %q", cfg.BasePath())
	}
	if cfg.Weekends() {
		t.Fatal("weekends should be off")
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel())
	}
	if cfg.LogFile() != filepath.Join(dir, "worklog.log") {
		t.Fatalf("log file = %q", cfg.LogFile())
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("WORKLOG_CONFIG_PATH", t.TempDir())
	t.Setenv("WORKLOG_LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel() != "warn" {
		t.Fatalf("log level = %q", cfg.LogLevel())
	}
	if !cfg.Weekends() {
		t.Fatal("weekends default should be on")
	}
}

func TestLoadConfigExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WORKLOG_CONFIG_PATH", t.TempDir())
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(home, ".worklog.db") {
		t.Fatalf("path = %q", cfg.BasePath())
	}
}
