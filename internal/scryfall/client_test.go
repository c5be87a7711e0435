package scryfall_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"proxyforge/internal/scryfall"
	"proxyforge/internal/services"
)

func newTestClient(t *testing.T, handler http.Handler) (*scryfall.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := scryfall.New(server.URL, scryfall.WithRetryAttempts(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client, server
}

func TestFindBuildsExactPath(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"name":"Brainstorm","lang":"en","set":"ice","image_uris":{"large":"https://img/brainstorm.jpg"}}`))
	}))

	card, err := client.Find(context.Background(), "Brainstorm", "ice", "57", "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if gotPath != "/cards/ice/57" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if card.Name != "Brainstorm" || card.ImageURL() != "https://img/brainstorm.jpg" {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestFindAppendsLanguageSegment(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"name":"Brainstorm"}`))
	}))

	if _, err := client.Find(context.Background(), "Brainstorm", "ice", "57", "ja"); err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if gotPath != "/cards/ice/57/ja" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestFindRequiresQualifiers(t *testing.T) {
	client, _ := newTestClient(t, http.NewServeMux())
	if _, err := client.Find(context.Background(), "Brainstorm", "", "57", ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSearchQueryParameters(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"total_cards":1,"data":[{"name":"Brainstorm"}]}`))
	}))

	result, err := client.Search(context.Background(), "Brainstorm", true, true)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result.Data))
	}
	for key, want := range map[string]string{
		"q":                    "Brainstorm",
		"unique":               "prints",
		"include_extras":       "true",
		"include_variations":   "true",
		"include_multilingual": "true",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Fatalf("query %s: expected %q, got %v", key, want, got)
		}
	}
}

func TestSearchOmitsWideningByDefault(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	if _, err := client.Search(context.Background(), "Brainstorm", false, false); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for _, key := range []string{"unique", "include_extras", "include_variations", "include_multilingual"} {
		if _, present := gotQuery[key]; present {
			t.Fatalf("expected %s to be absent, got %v", key, gotQuery[key])
		}
	}
}

func TestNotFoundIsTagged(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Brainstorm"}`))
	}))

	card, err := client.Find(context.Background(), "Brainstorm", "ice", "57", "")
	if err != nil {
		t.Fatalf("Find failed after retry: %v", err)
	}
	if card.Name != "Brainstorm" {
		t.Fatalf("unexpected card: %+v", card)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestRetryExhaustionIsTransient(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Search(context.Background(), "Brainstorm", false, false)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected retry attempts exhausted at 2, got %d", calls.Load())
	}
}

func TestDownloadImage(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))

	body, err := client.DownloadImage(context.Background(), server.URL+"/img/card.jpg")
	if err != nil {
		t.Fatalf("DownloadImage failed: %v", err)
	}
	if string(body) != "jpeg-bytes" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestEtchedAvailable(t *testing.T) {
	id := int64(123)
	etched := &scryfall.Card{TCGPlayerEtchedID: &id}
	if !etched.EtchedAvailable() {
		t.Fatal("expected etched availability")
	}
	if (&scryfall.Card{}).EtchedAvailable() {
		t.Fatal("expected no etched availability")
	}
}
