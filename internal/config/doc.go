// Package config provides the typed run configuration for vidwalk.
// It loads and validates the YAML configuration file that carries the
// API credential, seed keywords, rate-limit budget, and traversal knobs.
package config
