// Package config loads and validates Proxyforge configuration.
//
// Configuration is TOML decoded over compiled defaults, then normalized
// (path expansion, URL trimming, fallback timeouts) and validated. A sample
// configuration file ships embedded for `proxyforge config init`.
package config
