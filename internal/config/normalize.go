package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return err
	}
	if c.Paths.CacheDir, err = expandPath(strings.TrimSpace(c.Paths.CacheDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}

	c.Scryfall.BaseURL = strings.TrimRight(strings.TrimSpace(c.Scryfall.BaseURL), "/")
	c.Archidekt.BaseURL = strings.TrimRight(strings.TrimSpace(c.Archidekt.BaseURL), "/")
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Scryfall.TimeoutSeconds <= 0 {
		c.Scryfall.TimeoutSeconds = defaultScryfallTimeout
	}
	if c.Scryfall.RetryAttempts <= 0 {
		c.Scryfall.RetryAttempts = defaultScryfallRetries
	}
	if c.Archidekt.TimeoutSeconds <= 0 {
		c.Archidekt.TimeoutSeconds = defaultArchidektTimeout
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
	if c.Document.CardWidthMM <= 0 {
		c.Document.CardWidthMM = defaultCardWidthMM
	}
	if c.Document.CardHeightMM <= 0 {
		c.Document.CardHeightMM = defaultCardHeightMM
	}
	return nil
}
