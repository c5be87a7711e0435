package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"proxyforge/internal/config"
)

// Store persists downloaded card images in a SQLite database so repeated runs
// against the same deck skip the network. A file lock guards the database
// against concurrent generation runs sharing one cache directory.
type Store struct {
	db       *sql.DB
	path     string
	maxBytes int64

	lockPath string
	lock     *flock.Flock

	logger *slog.Logger
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Stats summarizes cache occupancy.
type Stats struct {
	Path       string
	Entries    int64
	TotalBytes int64
	MaxBytes   int64
}

// Open initializes or connects to the image cache database and takes the
// cache lock. It fails when another process already holds the lock.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.CacheDir, "images.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, errors.New("image cache is in use by another proxyforge run")
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "images.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:       db,
		path:     dbPath,
		maxBytes: int64(cfg.ImageCache.MaxMiB) * 1024 * 1024,
		lockPath: lockPath,
		lock:     lock,
		logger:   logger.With(slog.String("component", "image-cache")),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS images (
	url        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	size       INTEGER NOT NULL,
	fetched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_images_fetched_at ON images(fetched_at);
`
	if err := s.execWithRetry(ctx, schema); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}
	return nil
}

// Close releases the database connection and the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = fmt.Errorf("release cache lock: %w", err)
		}
	}
	return dbErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached body for url, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, url string) ([]byte, bool, error) {
	ctx = ensureContext(ctx)
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM images WHERE url = ?`, url).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}
	return body, true, nil
}

// Put stores body under url, replacing any previous entry, then evicts the
// oldest entries until the cache fits its size budget.
func (s *Store) Put(ctx context.Context, url string, body []byte) error {
	ctx = ensureContext(ctx)
	err := s.execWithRetry(ctx,
		`INSERT OR REPLACE INTO images (url, body, size, fetched_at) VALUES (?, ?, ?, ?)`,
		url, body, int64(len(body)), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return s.evict(ctx)
}

// evict removes least-recently-fetched entries while the cache exceeds its
// budget. A zero budget disables eviction.
func (s *Store) evict(ctx context.Context) error {
	if s.maxBytes <= 0 {
		return nil
	}
	for {
		var total int64
		if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size), 0) FROM images`).Scan(&total); err != nil {
			return fmt.Errorf("cache size: %w", err)
		}
		if total <= s.maxBytes {
			return nil
		}
		res, err := s.execWithRetryResult(ctx,
			`DELETE FROM images WHERE url IN (SELECT url FROM images ORDER BY fetched_at ASC LIMIT 1)`)
		if err != nil {
			return fmt.Errorf("cache evict: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil || affected == 0 {
			return err
		}
		s.logger.Debug("evicted oldest cache entry", slog.Int64("total_bytes", total))
	}
}

// Stats reports entry count and total stored bytes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	stats := Stats{Path: s.path, MaxBytes: s.maxBytes}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM images`).Scan(&stats.Entries, &stats.TotalBytes)
	if err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// Clear removes every cached image.
func (s *Store) Clear(ctx context.Context) error {
	ctx = ensureContext(ctx)
	if err := s.execWithRetry(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func (s *Store) execWithRetryResult(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}
