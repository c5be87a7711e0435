// Package scryfall implements the card lookup port against the Scryfall API.
//
// The client covers the four operations resolution needs: exact find by set
// and collector number, name search with optional print widening and
// multilingual inclusion, fetch by card identifier, and raw image download.
// Transient responses (429, 5xx, network errors) are retried with capped
// exponential backoff; 404s surface as services.ErrNotFound.
package scryfall
