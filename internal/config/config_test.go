package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"proxyforge/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Scryfall.BaseURL != "https://api.scryfall.com" {
		t.Fatalf("unexpected scryfall base url: %q", cfg.Scryfall.BaseURL)
	}
	if cfg.Scryfall.TimeoutSeconds != 10 || cfg.Scryfall.RetryAttempts != 3 {
		t.Fatalf("unexpected scryfall defaults: %+v", cfg.Scryfall)
	}
	if !cfg.ImageCache.Enabled {
		t.Fatal("expected image cache enabled by default")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`output_dir = "` + filepath.Join(dir, "out") + `"`,
		"[scryfall]",
		`base_url = "https://example.test/api/"`,
		"timeout_seconds = -5",
		"[tokens]",
		"copies = 4",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Scryfall.BaseURL != "https://example.test/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Scryfall.BaseURL)
	}
	if cfg.Scryfall.TimeoutSeconds != 10 {
		t.Fatalf("expected non-positive timeout replaced with default, got %d", cfg.Scryfall.TimeoutSeconds)
	}
	if cfg.Tokens.Copies != 4 {
		t.Fatalf("expected token copies 4, got %d", cfg.Tokens.Copies)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad url", "[scryfall]\nbase_url = \"not a url\"\n"},
		{"token copies over cap", "[tokens]\ncopies = 101\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
		{"bad log level", "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}
