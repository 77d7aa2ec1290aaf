package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Package-level sentinel errors let callers use errors.Is while keeping
// the messages human-readable in CLI output.
var (
	// ErrMissingAPIKey is returned when api_key is absent or empty.
	ErrMissingAPIKey = errors.New("api_key is required")

	// ErrNoKeywords is returned when the keywords list is absent or empty.
	ErrNoKeywords = errors.New("keywords must contain at least one entry")

	// ErrBlankKeyword is returned when a keyword entry is an empty string.
	ErrBlankKeyword = errors.New("keywords must not contain empty entries")

	// ErrInvalidMaxResults is returned when max_results_per_keyword is not positive.
	ErrInvalidMaxResults = errors.New("max_results_per_keyword must be a positive integer")

	// ErrInvalidRequestRate is returned when requests_per_second is not positive.
	ErrInvalidRequestRate = errors.New("requests_per_second must be a positive number")

	// ErrInvalidMaxDepth is returned when max_depth is negative.
	// Zero is allowed and means seeds only.
	ErrInvalidMaxDepth = errors.New("max_depth must be zero or a positive integer")

	// ErrInvalidMaxRetries is returned when max_retries is negative.
	// Zero is allowed and disables retries.
	ErrInvalidMaxRetries = errors.New("max_retries must be zero or a positive integer")

	// ErrInvalidTimeout is returned when default_timeout is not positive.
	ErrInvalidTimeout = errors.New("default_timeout must be a positive number of seconds")

	// ErrMissingOutputFile is returned when output_file is explicitly blank.
	ErrMissingOutputFile = errors.New("output_file must not be empty")

	// ErrInvalidWorkers is returned when workers is less than one.
	ErrInvalidWorkers = errors.New("workers must be at least 1")

	// ErrInvalidStrategy is returned when related_strategy is neither
	// "api" nor "keywords".
	ErrInvalidStrategy = errors.New(`related_strategy must be "api" or "keywords"`)

	// ErrInvalidMaxRelatedKeywords is returned when max_related_keywords
	// is not positive.
	ErrInvalidMaxRelatedKeywords = errors.New("max_related_keywords must be a positive integer")
)
