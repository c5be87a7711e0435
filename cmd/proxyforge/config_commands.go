package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"proxyforge/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the effective configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults are shown")
			}

			rows := [][]string{
				{"paths.output_dir", cfg.Paths.OutputDir},
				{"paths.cache_dir", cfg.Paths.CacheDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"scryfall.base_url", cfg.Scryfall.BaseURL},
				{"scryfall.timeout_seconds", fmt.Sprintf("%d", cfg.Scryfall.TimeoutSeconds)},
				{"scryfall.retry_attempts", fmt.Sprintf("%d", cfg.Scryfall.RetryAttempts)},
				{"archidekt.base_url", cfg.Archidekt.BaseURL},
				{"archidekt.timeout_seconds", fmt.Sprintf("%d", cfg.Archidekt.TimeoutSeconds)},
				{"tokens.copies", fmt.Sprintf("%d", cfg.Tokens.Copies)},
				{"tokens.print_all_variants", yesNo(cfg.Tokens.PrintAllVariants)},
				{"document.card_width_mm", fmt.Sprintf("%.1f", cfg.Document.CardWidthMM)},
				{"document.card_height_mm", fmt.Sprintf("%.1f", cfg.Document.CardHeightMM)},
				{"document.save_images", yesNo(cfg.Document.SaveImages)},
				{"image_cache.enabled", yesNo(cfg.ImageCache.Enabled)},
				{"image_cache.max_mib", fmt.Sprintf("%d", cfg.ImageCache.MaxMiB)},
				{"notifications.ntfy_topic", cfg.Notifications.NtfyTopic},
				{"notifications.deck", yesNo(cfg.Notifications.Deck)},
				{"notifications.errors", yesNo(cfg.Notifications.Errors)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows))
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
