package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.With(slog.String("component", "resolver")).Info("card resolved", slog.String("name", "Brainstorm"))

	out := buf.String()
	if !strings.Contains(out, " INFO resolver: card resolved") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, "name=Brainstorm") {
		t.Fatalf("expected attribute rendering, got %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Fatalf("component attribute should be consumed, got %q", out)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("lookup", slog.String("name", "Fire // Ice"))

	if !strings.Contains(buf.String(), `name="Fire // Ice"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("unexpected filtering result: %q", out)
	}
}
