package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"proxyforge/internal/config"
)

const userAgent = "Proxyforge-Go/0.1.0"

// Service defines the notification surface exposed to the materialization
// pipeline.
type Service interface {
	NotifyGenerationStarted(ctx context.Context, deckName string, entryCount int) error
	NotifyGenerationCompleted(ctx context.Context, deckName, outputPath string, cardCount int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		deckEvents: cfg.Notifications.Deck,
		errEvents:  cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	deckEvents bool
	errEvents  bool
}

func (n *ntfyService) NotifyGenerationStarted(ctx context.Context, deckName string, entryCount int) error {
	if !n.deckEvents {
		return nil
	}
	deckName = strings.TrimSpace(deckName)
	data := payload{
		title:   "Proxyforge - Generation Started",
		message: fmt.Sprintf("Started generating %s (%d entries)", deckName, entryCount),
		tags:    []string{"proxyforge", "generate", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyGenerationCompleted(ctx context.Context, deckName, outputPath string, cardCount int, duration time.Duration) error {
	if !n.deckEvents {
		return nil
	}
	deckName = strings.TrimSpace(deckName)
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	message := fmt.Sprintf("Proxy sheet ready: %s (%d cards in %s)", deckName, cardCount, duration)
	if outputPath = strings.TrimSpace(outputPath); outputPath != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, outputPath)
	}
	data := payload{
		title:    "Proxyforge - Complete",
		message:  message,
		tags:     []string{"proxyforge", "generate", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errEvents {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	if err != nil {
		builder.WriteString(": ")
		builder.WriteString(err.Error())
	}
	data := payload{
		title:    "Proxyforge - Error",
		message:  builder.String(),
		tags:     []string{"proxyforge", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Proxyforge - Test",
		message:  "Notification system test",
		tags:     []string{"proxyforge", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyGenerationStarted(context.Context, string, int) error { return nil }
func (noopService) NotifyGenerationCompleted(context.Context, string, string, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
