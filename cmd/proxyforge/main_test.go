package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"proxyforge/internal/config"
	"proxyforge/internal/logging"
)

func TestLanguagesCommandListsCodes(t *testing.T) {
	cmd := newLanguagesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("languages command failed: %v", err)
	}
	for _, want := range []string{"en", "English", "zht", "Japanese"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	cmd := newConfigInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--path", target})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	body, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(body), "[scryfall]") {
		t.Fatalf("sample config missing expected section:\n%s", body)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	cmd := newConfigInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--path", target})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without --overwrite")
	}
}

func TestBuildSourceFlagValidation(t *testing.T) {
	cfg := config.Default()
	logger := logging.Discard()

	if _, err := buildSource(&cfg, logger, "", "", 0); err == nil {
		t.Fatal("expected error when no deck flag is set")
	}
	if _, err := buildSource(&cfg, logger, "deck.txt", "", 123); err == nil {
		t.Fatal("expected error for conflicting deck flags")
	}
	if _, err := buildSource(&cfg, logger, "", "https://example.com/decks/123", 0); err == nil {
		t.Fatal("expected error for non-Archidekt URL")
	}
	if _, err := buildSource(&cfg, logger, "", "https://archidekt.com/decks/123456", 0); err != nil {
		t.Fatalf("expected valid Archidekt URL accepted, got %v", err)
	}
	if _, err := buildSource(&cfg, logger, "deck.txt", "", 0); err != nil {
		t.Fatalf("expected file source accepted, got %v", err)
	}
}

func TestStageLabels(t *testing.T) {
	if stageLabel("resolve_entries") != "Resolving cards" {
		t.Fatalf("unexpected label %q", stageLabel("resolve_entries"))
	}
	if stageLabel("write_document") != "Building sheet" {
		t.Fatalf("unexpected label %q", stageLabel("write_document"))
	}
}
