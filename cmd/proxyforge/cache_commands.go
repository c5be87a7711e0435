package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"proxyforge/internal/cache"
	"proxyforge/internal/logging"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Image cache utilities",
	}

	cacheCmd.AddCommand(newCacheInfoCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func withCacheStore(ctx *commandContext, fn func(*cache.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := cache.Open(cfg, logging.Discard())
	if err != nil {
		return fmt.Errorf("open image cache: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newCacheInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show image cache size and location",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(ctx, func(store *cache.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"Location", stats.Path},
					{"Cached images", fmt.Sprintf("%d", stats.Entries)},
					{"Size", humanize.IBytes(uint64(stats.TotalBytes))},
					{"Budget", humanize.IBytes(uint64(stats.MaxBytes))},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Cache", "Value"}, rows))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(ctx, func(store *cache.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached images (%s)\n",
					stats.Entries, humanize.IBytes(uint64(stats.TotalBytes)))
				return nil
			})
		},
	}
}
