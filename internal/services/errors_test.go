package services_test

import (
	"errors"
	"testing"

	"proxyforge/internal/services"
)

func TestWrapKeepsMarkerReachable(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrNotFound, "resolve", "search", "card missing", base)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause to remain reachable, got %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if got := err.Error(); got != "transient failure: service failure" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestIsSoft(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		expect bool
	}{
		{"not found", services.Wrap(services.ErrNotFound, "resolve", "find", "", nil), true},
		{"missing image", services.Wrap(services.ErrMissingImage, "resolve", "faces", "", nil), true},
		{"transient", services.Wrap(services.ErrTransient, "scryfall", "search", "", nil), true},
		{"validation", services.Wrap(services.ErrValidation, "printer", "input", "", nil), false},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "", nil), false},
	}
	for _, tc := range cases {
		if got := services.IsSoft(tc.err); got != tc.expect {
			t.Fatalf("%s: expected IsSoft=%v, got %v", tc.name, tc.expect, got)
		}
	}
}
