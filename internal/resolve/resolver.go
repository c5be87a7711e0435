package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"proxyforge/internal/deck"
	"proxyforge/internal/progress"
	"proxyforge/internal/scryfall"
	"proxyforge/internal/services"
)

// Options controls a resolution run.
type Options struct {
	// LanguageCode narrows candidate selection to one card language. When the
	// language-qualified lookup misses, resolution retries once without it.
	LanguageCode string
	// TokenCopies is the print quantity for related tokens. Zero disables
	// token harvesting entirely.
	TokenCopies int
	// PrintAllVariants keeps every harvested token instead of collapsing
	// duplicates by name during expansion.
	PrintAllVariants bool
}

// Resolver turns deck entries into sets of printable card sides using the
// card lookup port.
type Resolver struct {
	api    scryfall.API
	logger *slog.Logger
}

// New builds a resolver on top of the lookup port.
func New(api scryfall.API, logger *slog.Logger) *Resolver {
	return &Resolver{api: api, logger: logger.With(slog.String("component", "resolver"))}
}

// ResolveDeck resolves every entry in list order, notifying progress after
// each one. Per-entry failures are soft: the entry keeps empty sides and the
// run continues. Cancellation stops before the next lookup is issued.
func (r *Resolver) ResolveDeck(ctx context.Context, entries []*deck.Entry, opts Options, notify progress.Func) error {
	tracker := progress.NewTracker(progress.StageResolveEntries, len(entries), notify)
	tracker.Start()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.resolveEntry(ctx, entry, opts); err != nil {
			if !services.IsSoft(err) {
				return err
			}
			r.logger.Error("entry dropped from manifest", slog.String("card", entry.Name), slog.Any("error", err))
			tracker.StepError(fmt.Sprintf("card %q could not be resolved", entry.Name))
			continue
		}
		tracker.Step()
	}
	return nil
}

// resolveEntry populates entry.Sides (and entry.Tokens when token copies are
// requested) from the best-matching card record.
func (r *Resolver) resolveEntry(ctx context.Context, entry *deck.Entry, opts Options) error {
	candidate, err := r.lookupCandidate(ctx, entry, opts.LanguageCode)
	if candidate == nil && opts.LanguageCode != "" {
		r.logger.Warn("card not found in requested language, retrying without it",
			slog.String("card", entry.Name), slog.String("language", opts.LanguageCode), slog.Any("error", err))
		candidate, err = r.lookupCandidate(ctx, entry, "")
	}
	if candidate == nil {
		if err != nil {
			return err
		}
		return services.Wrap(services.ErrNotFound, "resolve", "lookup", entry.Name, nil)
	}

	sides, err := extractSides(entry, candidate)
	if err != nil {
		return err
	}
	entry.Sides = sides

	if opts.TokenCopies > 0 {
		entry.Tokens = harvestTokens(candidate)
	}
	return nil
}

// lookupCandidate dispatches to an exact find when the entry pins a printing,
// otherwise to a name search, then applies the candidate selection predicate.
// Transport failures are returned alongside a nil candidate so the caller can
// treat them as a miss for this attempt.
func (r *Resolver) lookupCandidate(ctx context.Context, entry *deck.Entry, language string) (*scryfall.Card, error) {
	var candidates []*scryfall.Card
	if entry.ExpansionCode != "" && entry.CollectorNumber != "" {
		card, err := r.api.Find(ctx, entry.Name, entry.ExpansionCode, entry.CollectorNumber, language)
		if err != nil {
			return nil, err
		}
		candidates = []*scryfall.Card{card}
	} else {
		includeExtras := entry.ExpansionCode != "" || entry.IsEtched || entry.IsArt
		result, err := r.api.Search(ctx, entry.Name, includeExtras, language != "")
		if err != nil {
			return nil, err
		}
		candidates = result.Data
	}

	for _, candidate := range candidates {
		if matchesEntry(candidate, entry, language) {
			return candidate, nil
		}
	}
	return nil, nil
}

func matchesEntry(candidate *scryfall.Card, entry *deck.Entry, language string) bool {
	if candidate == nil || !strings.EqualFold(candidate.Name, entry.Name) {
		return false
	}
	if entry.IsEtched && !candidate.EtchedAvailable() {
		return false
	}
	if entry.ExpansionCode != "" && entry.ExpansionCode != candidate.Set {
		return false
	}
	if language != "" && !strings.EqualFold(candidate.Lang, language) {
		return false
	}
	return true
}

const faceSeparator = " // "

// extractSides derives the printable sides of a resolved candidate. The
// three steps run in a fixed order; later steps override the set built by
// earlier ones.
func extractSides(entry *deck.Entry, candidate *scryfall.Card) (deck.SideSet, error) {
	var sides deck.SideSet

	// Multi-faced cards: one side per face that carries an image block.
	for _, face := range candidate.CardFaces {
		if face.ImageURIs == nil {
			continue
		}
		sides.Add(deck.CardSide{Name: face.Name, ImageURL: face.ImageURIs.Large})
	}

	// Art cards render once, not per face. The self-matching split name is
	// how art-series prints come out of deck exports.
	if isArtCard(entry) && sides.Len() > 0 {
		first, _ := sides.First()
		sides.Clear()
		sides.Add(first)
	}

	// Single-face fallback: also rebuilds the set when any face came back
	// without a usable name or image.
	if sides.Len() == 0 || hasIncompleteSide(&sides) {
		sides.Clear()
		imageURL := candidate.ImageURL()
		if imageURL == "" {
			return deck.SideSet{}, services.Wrap(services.ErrMissingImage, "resolve", "faces", entry.Name, nil)
		}
		sides.Add(deck.CardSide{Name: entry.Name, ImageURL: imageURL})
	}

	return sides, nil
}

func isArtCard(entry *deck.Entry) bool {
	if entry.IsArt {
		return true
	}
	parts := strings.Split(entry.Name, faceSeparator)
	return len(parts) > 1 && parts[0] == parts[1]
}

func hasIncompleteSide(sides *deck.SideSet) bool {
	for _, side := range sides.Slice() {
		if side.Name == "" || side.ImageURL == "" {
			return true
		}
	}
	return false
}

func harvestTokens(candidate *scryfall.Card) []deck.TokenRef {
	var tokens []deck.TokenRef
	for _, part := range candidate.AllParts {
		if part.Component != scryfall.ComponentToken {
			continue
		}
		tokens = append(tokens, deck.TokenRef{Name: part.Name, LookupURI: part.URI})
	}
	return tokens
}
