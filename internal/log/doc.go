// Package log provides slog-based logging with automatic masking of
// credentials, so the API key can never leak into log output.
//
// The crawl runs with a single pre-obtained API key that every request
// carries. Log statements routinely include request URLs and error
// bodies, both of which can embed the key. SecureHandler sits between
// the application and the real slog handler and replaces any attribute
// whose key names a credential, or whose value looks like one, before
// the record is written.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	slog.Info("configuration loaded", "api_key", cfg.APIKey) // masked
package log
