package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"proxyforge/internal/services"
)

const userAgent = "proxyforge/0.1"

// API defines the card lookup operations the resolution engine depends on.
type API interface {
	Find(ctx context.Context, name, setCode, collectorNumber, language string) (*Card, error)
	Search(ctx context.Context, name string, includeExtras, includeMultilingual bool) (*SearchResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Card, error)
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Client provides access to the Scryfall API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	retryAttempts int
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRetryAttempts caps how many times a transient response is retried.
func WithRetryAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryAttempts = attempts
		}
	}
}

// New creates a Scryfall client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("scryfall base url required")
	}
	client := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		retryAttempts: 3,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Find fetches the exact printing identified by set code and collector number.
// The language path segment is appended only when requested.
func (c *Client) Find(ctx context.Context, name, setCode, collectorNumber, language string) (*Card, error) {
	if strings.TrimSpace(setCode) == "" || strings.TrimSpace(collectorNumber) == "" {
		return nil, services.Wrap(services.ErrValidation, "scryfall", "find", fmt.Sprintf("card %q needs set code and collector number", name), nil)
	}
	endpoint := fmt.Sprintf("%s/cards/%s/%s", c.baseURL, url.PathEscape(setCode), url.PathEscape(collectorNumber))
	if language != "" {
		endpoint += "/" + url.PathEscape(language)
	}

	var card Card
	if err := c.getJSON(ctx, endpoint, "find", name, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Search performs a name search. includeExtras widens the search to every
// print and variation; includeMultilingual includes non-English records.
func (c *Client) Search(ctx context.Context, name string, includeExtras, includeMultilingual bool) (*SearchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, "scryfall", "search", "card name must not be empty", nil)
	}
	params := url.Values{}
	params.Set("q", name)
	if includeExtras {
		params.Set("unique", "prints")
		params.Set("include_extras", "true")
		params.Set("include_variations", "true")
	}
	if includeMultilingual {
		params.Set("include_multilingual", "true")
	}
	endpoint := c.baseURL + "/cards/search?" + params.Encode()

	var result SearchResult
	if err := c.getJSON(ctx, endpoint, "search", name, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByID fetches a card record by its Scryfall identifier.
func (c *Client) GetByID(ctx context.Context, id uuid.UUID) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/%s", c.baseURL, id)

	var card Card
	if err := c.getJSON(ctx, endpoint, "get", id.String(), &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DownloadImage fetches the raw image bytes behind a card image URL.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, services.Wrap(services.ErrValidation, "scryfall", "image", "image url must not be empty", nil)
	}
	resp, err := c.doWithRetry(ctx, imageURL)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "scryfall", "image", imageURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "scryfall", "image", imageURL, err)
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "scryfall", "image", imageURL, nil)
	default:
		return nil, services.Wrap(services.ErrTransient, "scryfall", "image", fmt.Sprintf("%s returned %d", imageURL, resp.StatusCode), nil)
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint, operation, subject string, payload any) error {
	resp, err := c.doWithRetry(ctx, endpoint)
	if err != nil {
		return services.Wrap(services.ErrTransient, "scryfall", operation, subject, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
			return services.Wrap(services.ErrTransient, "scryfall", operation, fmt.Sprintf("decode response for %q", subject), err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, "scryfall", operation, subject, nil)
	default:
		return services.Wrap(services.ErrTransient, "scryfall", operation, fmt.Sprintf("%q returned %d", subject, resp.StatusCode), nil)
	}
}

const (
	retryInitialBackoff = 250 * time.Millisecond
	retryMaxBackoff     = 2 * time.Second
)

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// doWithRetry issues a GET with capped exponential backoff against transient
// responses (network errors, 429, 5xx). Non-retryable responses are returned
// to the caller for status handling.
func (c *Client) doWithRetry(ctx context.Context, endpoint string) (*http.Response, error) {
	delay := retryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json;q=0.9,*/*;q=0.8")

		requestStart := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(requestStart)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if err != nil {
			lastErr = fmt.Errorf("execute request (latency=%v): %w", latency, err)
		} else {
			lastErr = fmt.Errorf("scryfall returned %d (latency=%v)", resp.StatusCode, latency)
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
		if attempt == c.retryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if next := delay * 2; next <= retryMaxBackoff {
			delay = next
		}
	}
	return nil, lastErr
}
