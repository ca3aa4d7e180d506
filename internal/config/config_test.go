package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"convertly/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Fatalf("unexpected base url: %q", cfg.API.BaseURL)
	}
	wantData := filepath.Join(tempHome, ".local", "share", "convertly")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Workflow.PollInterval != 1 {
		t.Fatalf("unexpected poll interval: %d", cfg.Workflow.PollInterval)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if cfg.Notifications.NtfyTopic != "" {
		t.Fatalf("expected ntfy disabled by default, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestLoadReadsFileAndTrimsBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := strings.Join([]string{
		"[api]",
		`base_url = "https://convert.example.com/api/"`,
		"request_timeout = 5",
		"",
		"[workflow]",
		"poll_interval = 2",
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.API.BaseURL != "https://convert.example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 5 {
		t.Fatalf("unexpected request timeout: %d", cfg.API.RequestTimeout)
	}
	if cfg.Workflow.PollInterval != 2 {
		t.Fatalf("unexpected poll interval: %d", cfg.Workflow.PollInterval)
	}
}

func TestLoadRejectsInvalidBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nbase_url = \"ftp://nope\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for non-http scheme")
	}
}

func TestLoadRejectsZeroPollInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[workflow]\npoll_interval = -3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	// Non-positive values normalize to the default rather than failing.
	if cfg.Workflow.PollInterval != 1 {
		t.Fatalf("expected poll interval normalized to 1, got %d", cfg.Workflow.PollInterval)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample returned error: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when overwriting existing config")
	}
}
