// Package logging assembles the structured slog loggers used across
// Proxyforge components.
//
// It owns the console and JSON handlers and the config-driven constructor so
// every component emits records with the same shape. The console handler
// promotes a "component" attribute into the message prefix.
package logging
