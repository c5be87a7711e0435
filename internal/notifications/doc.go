// Package notifications delivers generation events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Event toggles let users silence deck lifecycle messages or error
// alerts independently.
package notifications
