package archidekt

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"proxyforge/internal/deck"
	"proxyforge/internal/services"
)

var deckURLPattern = regexp.MustCompile(`^https://archidekt\.com/(?:api/decks/(\d+)/|decks/(\d+)(?:/|$))`)

// ExtractDeckID pulls the numeric deck identifier out of an archidekt.com
// deck or API URL.
func ExtractDeckID(url string) (int64, bool) {
	match := deckURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if match == nil {
		return 0, false
	}
	for _, group := range match[1:] {
		if group == "" {
			continue
		}
		if id, err := strconv.ParseInt(group, 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}

// Service retrieves decks from Archidekt and maps them onto the deck model.
type Service struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewService builds a deck retrieval service.
func NewService(fetcher Fetcher, logger *slog.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger.With(slog.String("component", "archidekt"))}
}

// RetrieveDeck fetches the deck and converts its slots into deck entries.
// Slots without an oracle name or with a non-positive quantity are skipped.
func (s *Service) RetrieveDeck(ctx context.Context, deckID int64) (*deck.Deck, error) {
	payload, err := s.fetcher.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if len(payload.Cards) == 0 {
		return nil, services.Wrap(services.ErrValidation, "archidekt", "deck", "deck is empty", nil)
	}

	result := &deck.Deck{Name: payload.Name}
	for _, slot := range payload.Cards {
		entry, ok := slotToEntry(slot)
		if !ok {
			s.logger.Debug("skipping deck slot without card name", slog.Int("quantity", slot.Quantity))
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

func slotToEntry(slot DeckCard) (*deck.Entry, bool) {
	if slot.Card == nil || slot.Card.OracleCard == nil {
		return nil, false
	}
	name := slot.Card.OracleCard.Name
	if name == "" || slot.Quantity <= 0 {
		return nil, false
	}

	entry := &deck.Entry{
		Name:            name,
		Quantity:        slot.Quantity,
		CollectorNumber: slot.Card.CollectorNumber,
		IsArt:           strings.EqualFold(slot.Card.OracleCard.Layout, "art_series"),
		IsEtched:        strings.EqualFold(slot.Modifier, "Etched"),
		IsFoil:          strings.EqualFold(slot.Modifier, "Foil"),
	}
	if slot.Card.Edition != nil {
		entry.ExpansionCode = slot.Card.Edition.EditionCode
	}
	return entry, true
}
