package archidekt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"proxyforge/internal/services"
)

const userAgent = "proxyforge/0.1"

// Fetcher defines the deck retrieval operation used by the facade.
type Fetcher interface {
	GetDeck(ctx context.Context, deckID int64) (*DeckResponse, error)
}

// Client provides access to the Archidekt API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

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

// New creates an Archidekt client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("archidekt base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GetDeck fetches a deck by its Archidekt identifier.
func (c *Client) GetDeck(ctx context.Context, deckID int64) (*DeckResponse, error) {
	if deckID <= 0 {
		return nil, services.Wrap(services.ErrValidation, "archidekt", "deck", "deck id must be positive", nil)
	}
	endpoint := fmt.Sprintf("%s/api/decks/%d/", c.baseURL, deckID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "archidekt", "deck", fmt.Sprintf("deck %d (latency=%v)", deckID, latency), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload DeckResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, services.Wrap(services.ErrTransient, "archidekt", "deck", fmt.Sprintf("decode deck %d", deckID), err)
		}
		return &payload, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "archidekt", "deck", fmt.Sprintf("deck %d", deckID), nil)
	default:
		return nil, services.Wrap(services.ErrTransient, "archidekt", "deck", fmt.Sprintf("deck %d returned %d (latency=%v)", deckID, resp.StatusCode, latency), nil)
	}
}
