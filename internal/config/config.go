package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Numeric defaults follow the behavior of the original keyword crawler
// where one existed; the rest are chosen to stay well inside the
// YouTube Data API's free daily quota.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "vidwalk"

	// DefaultMaxResultsPerKeyword is the number of hits requested per
	// seed keyword search. It does not bound related-video fetches.
	DefaultMaxResultsPerKeyword = 10

	// DefaultRequestsPerSecond is a deliberately conservative outbound
	// request budget. The API quota, not throughput, is the scarce
	// resource for most keys.
	DefaultRequestsPerSecond = 1.0

	// DefaultMaxDepth bounds how many related-video hops are followed
	// from each seed. Depth 0 means seeds only.
	DefaultMaxDepth = 2

	// DefaultMaxRetries is the retry budget per API call, on top of the
	// initial attempt.
	DefaultMaxRetries = 5

	// DefaultTimeoutSeconds is both the base of the exponential backoff
	// schedule and the per-attempt call timeout unit.
	DefaultTimeoutSeconds = 1.0

	// DefaultWorkers is the frontier fan-out. One worker is the
	// sequential baseline; the rate limiter is the real throughput
	// ceiling, so more workers rarely help below ~5 requests/second.
	DefaultWorkers = 1

	// DefaultOutputFile is where crawl results are appended, one JSON
	// record per line.
	DefaultOutputFile = "results.jsonl"

	// DefaultMaxRelatedKeywords caps how many derived keywords the
	// keyword expansion strategy searches per video.
	DefaultMaxRelatedKeywords = 5
)

// Related-video expansion strategies.
const (
	// StrategyAPI discovers related videos through the platform's
	// related-videos endpoint.
	StrategyAPI = "api"

	// StrategyKeywords derives search keywords from each video's title
	// and description and searches those instead. This replicates the
	// discovery behavior of the original crawler.
	StrategyKeywords = "keywords"
)

// Config holds all run parameters for a crawl. It is loaded once before
// the run, validated, and then passed read-only to every component.
// Nothing reads configuration from ambient process state.
type Config struct {
	// APIKey is the pre-obtained YouTube Data API credential.
	// It is required and must never appear in cleartext in logs;
	// the log package masks it.
	APIKey string `yaml:"api_key"`

	// Keywords are the seed search terms, in order. At least one is required.
	Keywords []string `yaml:"keywords"`

	// MaxResultsPerKeyword is the page size for each seed search.
	MaxResultsPerKeyword int `yaml:"max_results_per_keyword"`

	// RequestsPerSecond is the outbound request budget shared by all
	// API calls, retries included.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// MaxDepth is the depth cutoff. Entries at exactly this depth are
	// reported but never expanded.
	MaxDepth int `yaml:"max_depth"`

	// MaxRetries bounds retries per API call. Zero disables retries.
	MaxRetries int `yaml:"max_retries"`

	// DefaultTimeoutSeconds is the backoff base in seconds. Attempt n of
	// a call waits default_timeout * 2^(n-1) before retrying and is
	// itself bounded by default_timeout * n.
	DefaultTimeoutSeconds float64 `yaml:"default_timeout"`

	// OutputFile is the append-only JSONL result sink path.
	OutputFile string `yaml:"output_file"`

	// ReportFile, when set, receives a Markdown run report.
	ReportFile string `yaml:"report_file"`

	// DBDir, when set, enables the sqlite run-history database in that
	// directory. Empty disables persistence of run history.
	DBDir string `yaml:"db_dir"`

	// Workers is the number of concurrent frontier expansions.
	Workers int `yaml:"workers"`

	// RelatedStrategy selects how related videos are discovered:
	// StrategyAPI or StrategyKeywords.
	RelatedStrategy string `yaml:"related_strategy"`

	// MaxRelatedKeywords caps derived keyword searches per video when
	// RelatedStrategy is StrategyKeywords.
	MaxRelatedKeywords int `yaml:"max_related_keywords"`

	// Verbose enables debug logging. Set from the CLI flag, not the file.
	Verbose bool `yaml:"-"`
}

// NewConfig returns a Config populated with defaults. Required fields
// (APIKey, Keywords) stay empty and must come from the file.
func NewConfig() *Config {
	return &Config{
		MaxResultsPerKeyword:  DefaultMaxResultsPerKeyword,
		RequestsPerSecond:     DefaultRequestsPerSecond,
		MaxDepth:              DefaultMaxDepth,
		MaxRetries:            DefaultMaxRetries,
		DefaultTimeoutSeconds: DefaultTimeoutSeconds,
		OutputFile:            DefaultOutputFile,
		Workers:               DefaultWorkers,
		RelatedStrategy:       StrategyAPI,
		MaxRelatedKeywords:    DefaultMaxRelatedKeywords,
	}
}

// Timeout returns the backoff base as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DefaultTimeoutSeconds * float64(time.Second))
}

// SaveToDB reports whether run history should be persisted.
func (c *Config) SaveToDB() bool {
	return c.DBDir != ""
}

// XDGDataDir returns the XDG data directory for vidwalk.
// On Linux: ~/.local/share/vidwalk.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after loading, before any network activity, so that bad
// configurations fail fast with a clear message.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if len(c.Keywords) == 0 {
		return ErrNoKeywords
	}
	for _, k := range c.Keywords {
		if k == "" {
			return ErrBlankKeyword
		}
	}
	if c.MaxResultsPerKeyword <= 0 {
		return ErrInvalidMaxResults
	}
	if c.RequestsPerSecond <= 0 {
		return ErrInvalidRequestRate
	}
	// Depth 0 is valid: seeds only, no expansion.
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	// Zero retries is valid: one attempt per call.
	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if c.DefaultTimeoutSeconds <= 0 {
		return ErrInvalidTimeout
	}
	if c.OutputFile == "" {
		return ErrMissingOutputFile
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.RelatedStrategy != StrategyAPI && c.RelatedStrategy != StrategyKeywords {
		return ErrInvalidStrategy
	}
	if c.MaxRelatedKeywords <= 0 {
		return ErrInvalidMaxRelatedKeywords
	}
	return nil
}
