package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"proxyforge/internal/config"
	"proxyforge/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyGenerationStarted(context.Background(), "Example Deck", 10); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

type capturedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func captureServer(t *testing.T, captured *capturedRequest, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if calls != nil {
			*calls++
		}
		captured.title = r.Header.Get("Title")
		captured.tags = r.Header.Get("Tags")
		captured.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured.body = string(body)
		_ = r.Body.Close()
		w.WriteHeader(http.StatusOK)
	}))
}

func TestNtfyServiceFormatsMessages(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "generation started",
			notify: func(svc notifications.Service) error {
				return svc.NotifyGenerationStarted(context.Background(), "Mono Red Aggro", 60)
			},
			expectTitle:   "Proxyforge - Generation Started",
			expectMessage: "Started generating Mono Red Aggro (60 entries)",
			expectTags:    "proxyforge,generate,started",
		},
		{
			name: "generation completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyGenerationCompleted(context.Background(), "Mono Red Aggro", "/out/deck.html", 64, 3*time.Second)
			},
			expectTitle:    "Proxyforge - Complete",
			expectMessage:  "Proxy sheet ready: Mono Red Aggro (64 cards in 3s)\nFile: /out/deck.html",
			expectTags:     "proxyforge,generate,completed",
			expectPriority: "high",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("lookup failed"), "resolution")
			},
			expectTitle:    "Proxyforge - Error",
			expectMessage:  "Error with resolution: lookup failed",
			expectTags:     "proxyforge,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			notify: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Proxyforge - Test",
			expectMessage:  "Notification system test",
			expectTags:     "proxyforge,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured capturedRequest
			server := captureServer(t, &captured, nil)
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5
			cfg.Notifications.Deck = true
			cfg.Notifications.Errors = true

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsEventToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Deck = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyGenerationStarted(context.Background(), "Deck", 1); err != nil {
		t.Fatalf("expected disabled deck event to be dropped, got %v", err)
	}
	if err := svc.NotifyError(context.Background(), errors.New("boom"), "test"); err != nil {
		t.Fatalf("expected disabled error event to be dropped, got %v", err)
	}
}

func TestNtfyServiceReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error from non-2xx response")
	}
}
