package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"proxyforge/internal/config"
	"proxyforge/internal/deck"
	"proxyforge/internal/progress"
	"proxyforge/internal/services"
)

// ImageFetcher supplies image bytes for embedding, usually backed by the
// image cache.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options controls a single sheet generation.
type Options struct {
	// OutputDir receives the sheet and, when SaveImages is set, the images
	// directory.
	OutputDir string
	// OutputName overrides the file name derived from the deck name. The
	// .html extension is appended when missing.
	OutputName string
	// SaveImages additionally writes each embedded image to a directory next
	// to the sheet.
	SaveImages bool
}

// Generator renders resolved decks into printable HTML proxy sheets.
type Generator struct {
	cfg     config.Document
	fetcher ImageFetcher
	logger  *slog.Logger
}

// New builds a sheet generator.
func New(cfg config.Document, fetcher ImageFetcher, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger.With(slog.String("component", "document")),
	}
}

type slot struct {
	Name string
	// Src is typed so the template engine accepts data URIs.
	Src template.URL
}

type sheetData struct {
	DeckName     string
	CardWidthMM  float64
	CardHeightMM float64
	Cards        []slot
}

// Generate writes the proxy sheet for d and returns its path. Every side of
// every entry appears once per requested copy, in deck order. Images are
// embedded as data URIs so the sheet stands alone; a failed download falls
// back to referencing the remote URL.
func (g *Generator) Generate(ctx context.Context, d *deck.Deck, opts Options, notify progress.Func) (string, error) {
	type pending struct {
		name     string
		imageURL string
		copies   int
	}

	var work []pending
	for _, entry := range d.Entries {
		if entry.Sides.Len() == 0 {
			continue
		}
		copies := entry.Quantity
		if copies < 1 {
			copies = 1
		}
		for _, side := range entry.Sides.Slice() {
			work = append(work, pending{name: side.Name, imageURL: side.ImageURL, copies: copies})
		}
	}
	if len(work) == 0 {
		return "", services.Wrap(services.ErrValidation, "document", "generate", "no cards found in the deck", nil)
	}

	outputPath, imagesDir, err := g.resolvePaths(d.Name, opts)
	if err != nil {
		return "", err
	}

	tracker := progress.NewTracker(progress.StageWriteDocument, len(work), notify)
	tracker.Start()

	data := sheetData{
		DeckName:     d.Name,
		CardWidthMM:  g.cfg.CardWidthMM,
		CardHeightMM: g.cfg.CardHeightMM,
	}
	for i, item := range work {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		src := g.embedImage(ctx, item.name, item.imageURL, imagesDir, i, tracker)
		for c := 0; c < item.copies; c++ {
			data.Cards = append(data.Cards, slot{Name: item.name, Src: template.URL(src)})
		}
	}

	var builder strings.Builder
	if err := sheetTemplate.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("render sheet: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(builder.String()), 0o644); err != nil {
		return "", fmt.Errorf("write sheet: %w", err)
	}

	g.logger.Info("proxy sheet written",
		slog.String("path", outputPath), slog.Int("cards", len(data.Cards)))
	return outputPath, nil
}

// embedImage downloads one image and returns its data URI, saving a copy on
// disk when an images directory was requested. Download failures degrade to
// the remote URL so one broken image never sinks the sheet.
func (g *Generator) embedImage(ctx context.Context, name, imageURL, imagesDir string, index int, tracker *progress.Tracker) string {
	body, err := g.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		g.logger.Warn("image download failed, referencing remote URL",
			slog.String("card", name), slog.String("url", imageURL), slog.Any("error", err))
		tracker.StepError(fmt.Sprintf("image for %q could not be downloaded", name))
		return imageURL
	}

	if imagesDir != "" {
		filename := fmt.Sprintf("%03d_%s.jpg", index+1, sanitizeFilename(name))
		if err := os.WriteFile(filepath.Join(imagesDir, filename), body, 0o644); err != nil {
			g.logger.Warn("saving image file failed", slog.String("card", name), slog.Any("error", err))
		}
	}

	contentType := http.DetectContentType(body)
	tracker.Step()
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body)
}

func (g *Generator) resolvePaths(deckName string, opts Options) (string, string, error) {
	name := strings.TrimSpace(opts.OutputName)
	if name == "" {
		name = sanitizeFilename(deckName)
	}
	if name == "" {
		name = "deck"
	}
	if !strings.EqualFold(filepath.Ext(name), ".html") {
		name += ".html"
	}
	outputPath := filepath.Join(opts.OutputDir, name)

	var imagesDir string
	if opts.SaveImages {
		imagesDir = filepath.Join(opts.OutputDir, strings.TrimSuffix(name, filepath.Ext(name))+"_images")
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			return "", "", fmt.Errorf("create images directory: %w", err)
		}
	}
	return outputPath, imagesDir, nil
}

// sanitizeFilename keeps letters, digits, dashes, and underscores, mapping
// everything else to underscores.
func sanitizeFilename(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	return strings.Trim(mapped, "_")
}
