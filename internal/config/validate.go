package config

import (
	"fmt"
	"net/url"
	"strings"
)

const maxTokenCopies = 100

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEndpoints(); err != nil {
		return err
	}
	if err := c.validateTokens(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEndpoints() error {
	for name, value := range map[string]string{
		"scryfall.base_url":  c.Scryfall.BaseURL,
		"archidekt.base_url": c.Archidekt.BaseURL,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s is not a valid URL: %q", name, value)
		}
	}
	return nil
}

func (c *Config) validateTokens() error {
	if c.Tokens.Copies < 0 || c.Tokens.Copies > maxTokenCopies {
		return fmt.Errorf("tokens.copies must be between 0 and %d, got %d", maxTokenCopies, c.Tokens.Copies)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
