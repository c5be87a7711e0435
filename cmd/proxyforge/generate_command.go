package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"proxyforge/internal/archidekt"
	"proxyforge/internal/cache"
	"proxyforge/internal/config"
	"proxyforge/internal/document"
	"proxyforge/internal/language"
	"proxyforge/internal/notifications"
	"proxyforge/internal/printer"
	"proxyforge/internal/resolve"
	"proxyforge/internal/scryfall"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		deckFile       string
		deckURL        string
		deckID         int64
		outputDir      string
		outputName     string
		languageFlag   string
		tokenCopies    int
		printAllTokens bool
		saveImages     bool
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a printable proxy sheet from a deck list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			langCode, err := language.Normalize(languageFlag)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("token-copies") {
				tokenCopies = cfg.Tokens.Copies
			}
			if tokenCopies < 0 || tokenCopies > 100 {
				return fmt.Errorf("token copies must be between 0 and 100, got %d", tokenCopies)
			}
			if !cmd.Flags().Changed("print-all-tokens") {
				printAllTokens = cfg.Tokens.PrintAllVariants
			}

			api, err := scryfall.New(cfg.Scryfall.BaseURL,
				scryfall.WithTimeout(time.Duration(cfg.Scryfall.TimeoutSeconds)*time.Second),
				scryfall.WithRetryAttempts(cfg.Scryfall.RetryAttempts))
			if err != nil {
				return fmt.Errorf("build card API client: %w", err)
			}

			source, err := buildSource(cfg, logger, deckFile, deckURL, deckID)
			if err != nil {
				return err
			}

			var store *cache.Store
			if cfg.ImageCache.Enabled && !noCache {
				store, err = cache.Open(cfg, logger)
				if err != nil {
					return fmt.Errorf("open image cache: %w", err)
				}
				defer store.Close()
			}
			fetcher := cache.NewFetcher(store, api, logger)

			targetDir := cfg.Paths.OutputDir
			if strings.TrimSpace(outputDir) != "" {
				targetDir, err = config.ExpandPath(outputDir)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(targetDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}

			renderer := newProgressRenderer(os.Stdout)
			defer renderer.Close()

			p := printer.New(
				resolve.New(api, logger),
				document.New(cfg.Document, fetcher, logger),
				notifications.NewService(cfg),
				logger,
			)
			result, err := p.Materialize(runCtx, printer.Request{
				Source: source,
				Resolve: resolve.Options{
					LanguageCode:     langCode,
					TokenCopies:      tokenCopies,
					PrintAllVariants: printAllTokens,
				},
				Output: document.Options{
					OutputDir:  targetDir,
					OutputName: outputName,
					SaveImages: saveImages,
				},
				Progress: renderer.handle,
			})
			if err != nil {
				return err
			}
			renderer.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Deck", "Cards", "Dropped", "Duration", "Output"},
				[][]string{{
					result.Deck.Name,
					fmt.Sprintf("%d", result.CardCount),
					fmt.Sprintf("%d", result.DroppedEntries),
					result.Duration.Round(time.Millisecond).String(),
					result.OutputPath,
				}},
				1, 2,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&deckFile, "deck-file", "f", "", "Path to a deck list file")
	cmd.Flags().StringVarP(&deckURL, "deck-url", "u", "", "Archidekt deck URL")
	cmd.Flags().Int64Var(&deckID, "deck-id", 0, "Archidekt deck ID")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the generated sheet (defaults to configured output dir)")
	cmd.Flags().StringVar(&outputName, "output-name", "", "File name for the generated sheet (defaults to the deck name)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Preferred card language code (see `proxyforge languages`)")
	cmd.Flags().IntVar(&tokenCopies, "token-copies", 0, "Copies to print of each related token (0 disables tokens)")
	cmd.Flags().BoolVar(&printAllTokens, "print-all-tokens", false, "Print every token variant instead of one per name")
	cmd.Flags().BoolVar(&saveImages, "save-images", false, "Also save downloaded card images next to the sheet")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the image cache for this run")

	return cmd
}

// buildSource picks the deck source from the mutually exclusive deck flags.
func buildSource(cfg *config.Config, logger *slog.Logger, deckFile, deckURL string, deckID int64) (printer.Source, error) {
	set := 0
	if strings.TrimSpace(deckFile) != "" {
		set++
	}
	if strings.TrimSpace(deckURL) != "" {
		set++
	}
	if deckID > 0 {
		set++
	}
	if set == 0 {
		return nil, fmt.Errorf("one of --deck-file, --deck-url, or --deck-id is required")
	}
	if set > 1 {
		return nil, fmt.Errorf("--deck-file, --deck-url, and --deck-id are mutually exclusive")
	}

	if strings.TrimSpace(deckFile) != "" {
		path, err := config.ExpandPath(deckFile)
		if err != nil {
			return nil, err
		}
		return printer.NewFileSource(path), nil
	}

	if strings.TrimSpace(deckURL) != "" {
		id, ok := archidekt.ExtractDeckID(deckURL)
		if !ok {
			return nil, fmt.Errorf("unrecognized Archidekt deck URL %q", deckURL)
		}
		deckID = id
	}

	client, err := archidekt.New(cfg.Archidekt.BaseURL,
		archidekt.WithTimeout(time.Duration(cfg.Archidekt.TimeoutSeconds)*time.Second))
	if err != nil {
		return nil, fmt.Errorf("build deck API client: %w", err)
	}
	return printer.NewArchidektSource(archidekt.NewService(client, logger), deckID), nil
}
