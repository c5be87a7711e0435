// Package cache stores downloaded card images in a SQLite database keyed by
// URL, with least-recently-fetched eviction against a configurable size
// budget and flock-based protection against concurrent runs.
package cache
