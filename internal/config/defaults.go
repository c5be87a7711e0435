package config

const (
	defaultOutputDir        = "~/proxyforge"
	defaultCacheDir         = "~/.cache/proxyforge"
	defaultLogDir           = "~/.local/share/proxyforge/logs"
	defaultScryfallBaseURL  = "https://api.scryfall.com"
	defaultScryfallTimeout  = 10
	defaultScryfallRetries  = 3
	defaultArchidektBaseURL = "https://archidekt.com"
	defaultArchidektTimeout = 15
	defaultNotifyTimeout    = 10
	defaultCacheMaxMiB      = 512
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"

	// Physical Magic card dimensions.
	defaultCardWidthMM  = 63.0
	defaultCardHeightMM = 88.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			CacheDir:  defaultCacheDir,
			LogDir:    defaultLogDir,
		},
		Scryfall: Scryfall{
			BaseURL:        defaultScryfallBaseURL,
			TimeoutSeconds: defaultScryfallTimeout,
			RetryAttempts:  defaultScryfallRetries,
		},
		Archidekt: Archidekt{
			BaseURL:        defaultArchidektBaseURL,
			TimeoutSeconds: defaultArchidektTimeout,
		},
		Tokens: Tokens{
			Copies:           0,
			PrintAllVariants: false,
		},
		Document: Document{
			CardWidthMM:  defaultCardWidthMM,
			CardHeightMM: defaultCardHeightMM,
		},
		ImageCache: ImageCache{
			Enabled: true,
			MaxMiB:  defaultCacheMaxMiB,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Deck:           true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
