package resolve

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"proxyforge/internal/deck"
)

// ExpandTokens appends one synthetic entry per harvested token reference to
// the deck. References are processed in discovery order; when printAllVariants
// is false, duplicates by name collapse to the first occurrence. Expansion is
// single-depth: synthetic entries never carry further tokens.
//
// TODO: tokens sharing a name but printed in different sets are still treated
// as duplicates; grouping by printing needs product input.
func (r *Resolver) ExpandTokens(ctx context.Context, d *deck.Deck, copiesPerToken int, printAllVariants bool) error {
	if copiesPerToken <= 0 {
		return nil
	}

	var refs []deck.TokenRef
	for _, entry := range d.Entries {
		refs = append(refs, entry.Tokens...)
	}
	if !printAllVariants {
		refs = dedupeByName(refs)
	}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, ok := tokenIDFromURI(ref.LookupURI)
		if !ok {
			r.logger.Error("token reference has no valid lookup identifier",
				slog.String("token", ref.Name), slog.String("uri", ref.LookupURI))
			continue
		}
		card, err := r.api.GetByID(ctx, id)
		if err != nil {
			r.logger.Warn("token fetch failed, skipping",
				slog.String("token", ref.Name), slog.Any("error", err))
			continue
		}

		entry := &deck.Entry{
			Name:          ref.Name,
			Quantity:      copiesPerToken,
			ExpansionCode: card.Set,
		}
		entry.Sides.Add(deck.CardSide{Name: card.Name, ImageURL: card.ImageURL()})
		d.Entries = append(d.Entries, entry)
	}
	return nil
}

func dedupeByName(refs []deck.TokenRef) []deck.TokenRef {
	seen := make(map[string]struct{}, len(refs))
	out := refs[:0:0]
	for _, ref := range refs {
		if _, ok := seen[ref.Name]; ok {
			continue
		}
		seen[ref.Name] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// tokenIDFromURI extracts the card identifier from the trailing path segment
// of a token lookup URI.
func tokenIDFromURI(rawURI string) (uuid.UUID, bool) {
	parsed, err := url.Parse(rawURI)
	if err != nil {
		return uuid.UUID{}, false
	}
	segment := strings.TrimSuffix(parsed.Path, "/")
	if idx := strings.LastIndexByte(segment, '/'); idx >= 0 {
		segment = segment[idx+1:]
	}
	id, err := uuid.Parse(segment)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}
