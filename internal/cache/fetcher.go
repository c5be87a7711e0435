package cache

import (
	"context"
	"log/slog"
)

// Downloader is the subset of the card API used to pull image bytes.
type Downloader interface {
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}

// Fetcher serves image bytes through the cache, falling back to the
// downloader on a miss. A nil store makes it a pass-through.
type Fetcher struct {
	store      *Store
	downloader Downloader
	logger     *slog.Logger
}

// NewFetcher builds a cache-aware image fetcher. store may be nil when
// caching is disabled.
func NewFetcher(store *Store, downloader Downloader, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		store:      store,
		downloader: downloader,
		logger:     logger.With(slog.String("component", "image-fetcher")),
	}
}

// Fetch returns the image at url, preferring the cache. Cache write failures
// are logged and otherwise ignored so a full cache never blocks generation.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.store != nil {
		body, ok, err := f.store.Get(ctx, url)
		if err != nil {
			f.logger.Warn("cache read failed, downloading instead", slog.String("url", url), slog.Any("error", err))
		} else if ok {
			f.logger.Debug("cache hit", slog.String("url", url))
			return body, nil
		}
	}

	body, err := f.downloader.DownloadImage(ctx, url)
	if err != nil {
		return nil, err
	}

	if f.store != nil {
		if err := f.store.Put(ctx, url, body); err != nil {
			f.logger.Warn("cache write failed", slog.String("url", url), slog.Any("error", err))
		}
	}
	return body, nil
}
