package printer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"proxyforge/internal/archidekt"
	"proxyforge/internal/deck"
	"proxyforge/internal/document"
	"proxyforge/internal/notifications"
	"proxyforge/internal/progress"
	"proxyforge/internal/resolve"
	"proxyforge/internal/services"
)

// State identifies where a materialization run currently is.
type State string

const (
	StateIdle             State = "idle"
	StateResolvingEntries State = "resolving_entries"
	StateExpandingTokens  State = "expanding_tokens"
	StateCompleted        State = "completed"
	StateErrored          State = "errored"
)

// Source produces the deck to materialize, either from a local list file or
// an online deck builder.
type Source interface {
	Load(ctx context.Context) (*deck.Deck, error)
}

type fileSource struct {
	path string
}

func (s fileSource) Load(context.Context) (*deck.Deck, error) {
	return deck.ParseFile(s.path)
}

// NewFileSource reads the deck from a local list file.
func NewFileSource(path string) Source {
	return fileSource{path: path}
}

type archidektSource struct {
	svc    *archidekt.Service
	deckID int64
}

func (s archidektSource) Load(ctx context.Context) (*deck.Deck, error) {
	return s.svc.RetrieveDeck(ctx, s.deckID)
}

// NewArchidektSource fetches the deck from the Archidekt API.
func NewArchidektSource(svc *archidekt.Service, deckID int64) Source {
	return archidektSource{svc: svc, deckID: deckID}
}

// Assembler renders the finished deck into a document.
type Assembler interface {
	Generate(ctx context.Context, d *deck.Deck, opts document.Options, notify progress.Func) (string, error)
}

// Request describes one materialization run.
type Request struct {
	Source   Source
	Resolve  resolve.Options
	Output   document.Options
	Progress progress.Func
}

// Result summarizes a completed run.
type Result struct {
	Deck       *deck.Deck
	OutputPath string
	// CardCount is the number of printed card slots (sides times copies).
	CardCount int
	// DroppedEntries counts entries that resolved to nothing and were left
	// out of the sheet.
	DroppedEntries int
	Duration       time.Duration
}

// Printer drives a deck from its source through resolution, token expansion,
// and document assembly.
type Printer struct {
	resolver  *resolve.Resolver
	assembler Assembler
	notifier  notifications.Service
	logger    *slog.Logger

	mu    sync.Mutex
	state State
}

// New builds a printer from its collaborators.
func New(resolver *resolve.Resolver, assembler Assembler, notifier notifications.Service, logger *slog.Logger) *Printer {
	return &Printer{
		resolver:  resolver,
		assembler: assembler,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "printer")),
		state:     StateIdle,
	}
}

// State reports the current run state.
func (p *Printer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Printer) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Materialize runs the full pipeline for one deck. Entry-level resolution
// failures are reported through the progress observer and drop the entry; a
// deck with no entries or no resolvable cards fails the run without touching
// the document assembler.
func (p *Printer) Materialize(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()

	d, err := req.Source.Load(ctx)
	if err != nil {
		return nil, p.fail(ctx, req, "deck retrieval", err)
	}
	if len(d.Entries) == 0 {
		err := services.Wrap(services.ErrValidation, "printer", "materialize", "deck contains no entries", nil)
		return nil, p.fail(ctx, req, "deck validation", err)
	}

	p.logger.Info("materialization started",
		slog.String("deck", d.Name), slog.Int("entries", len(d.Entries)))
	if err := p.notifier.NotifyGenerationStarted(ctx, d.Name, len(d.Entries)); err != nil {
		p.logger.Warn("start notification failed", slog.Any("error", err))
	}

	p.setState(StateResolvingEntries)
	if err := p.resolver.ResolveDeck(ctx, d.Entries, req.Resolve, req.Progress); err != nil {
		return nil, p.fail(ctx, req, "card resolution", err)
	}

	p.setState(StateExpandingTokens)
	if err := p.resolver.ExpandTokens(ctx, d, req.Resolve.TokenCopies, req.Resolve.PrintAllVariants); err != nil {
		return nil, p.fail(ctx, req, "token expansion", err)
	}

	printable, dropped := splitResolved(d)
	if len(printable.Entries) == 0 {
		err := services.Wrap(services.ErrValidation, "printer", "materialize", "no cards found in the deck", nil)
		return nil, p.fail(ctx, req, "card resolution", err)
	}

	outputPath, err := p.assembler.Generate(ctx, printable, req.Output, req.Progress)
	if err != nil {
		return nil, p.fail(ctx, req, "document assembly", err)
	}
	p.setState(StateCompleted)

	result := &Result{
		Deck:           printable,
		OutputPath:     outputPath,
		CardCount:      countSlots(printable),
		DroppedEntries: dropped,
		Duration:       time.Since(started),
	}
	p.logger.Info("materialization completed",
		slog.String("deck", printable.Name),
		slog.String("output", outputPath),
		slog.Int("cards", result.CardCount),
		slog.Int("dropped_entries", dropped),
		slog.Duration("duration", result.Duration))
	if err := p.notifier.NotifyGenerationCompleted(ctx, printable.Name, outputPath, result.CardCount, result.Duration); err != nil {
		p.logger.Warn("completion notification failed", slog.Any("error", err))
	}
	return result, nil
}

// fail moves the printer into the absorbing error state and reports the
// error through the observer and notifier before handing it back.
func (p *Printer) fail(ctx context.Context, req Request, stage string, err error) error {
	p.setState(StateErrored)
	p.logger.Error("materialization failed", slog.String("stage", stage), slog.Any("error", err))
	if req.Progress != nil {
		req.Progress(progress.Event{
			Stage:        progress.StageResolveEntries,
			Percent:      100,
			ErrorMessage: fmt.Sprintf("%s failed: %v", stage, err),
		})
	}
	if notifyErr := p.notifier.NotifyError(ctx, err, stage); notifyErr != nil {
		p.logger.Warn("error notification failed", slog.Any("error", notifyErr))
	}
	return err
}

// splitResolved separates printable entries from those that resolved to
// nothing, preserving deck order.
func splitResolved(d *deck.Deck) (*deck.Deck, int) {
	printable := &deck.Deck{Name: d.Name}
	dropped := 0
	for _, entry := range d.Entries {
		if entry.Sides.Len() == 0 {
			dropped++
			continue
		}
		printable.Entries = append(printable.Entries, entry)
	}
	return printable, dropped
}

func countSlots(d *deck.Deck) int {
	total := 0
	for _, entry := range d.Entries {
		copies := entry.Quantity
		if copies < 1 {
			copies = 1
		}
		total += copies * entry.Sides.Len()
	}
	return total
}
