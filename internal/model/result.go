package model

import "time"

// CrawlResult is emitted exactly once per unique video id, at the moment
// the id first passes the visited-set gate. It records where in the graph
// the video was found.
type CrawlResult struct {
	// Ref is the discovered video.
	Ref VideoRef

	// Depth is the discovery depth (0 for seeds).
	Depth int

	// Parent is the id of the video that led here, empty for seeds.
	Parent string

	// DiscoveredAt is the UTC time of first discovery.
	DiscoveredAt time.Time
}

// NodeFailure records a frontier entry whose expansion exhausted its
// retry budget. Kept on the run summary so failures remain diagnosable
// after the run without digging through logs.
type NodeFailure struct {
	// ID is the video id of the failed entry.
	ID string

	// Depth is the entry's discovery depth.
	Depth int

	// Attempts is the number of fetch attempts made before giving up.
	Attempts int

	// Reason is the final error message.
	Reason string
}

// RunSummary aggregates the outcome of a single crawl run.
// It is built incrementally by the walker and handed to report writers
// and the history database when the frontier drains.
type RunSummary struct {
	// Keywords are the seed search terms, in configuration order.
	Keywords []string

	// MaxDepth is the configured depth cutoff.
	MaxDepth int

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the wall-clock length of the run.
	Duration time.Duration

	// Discovered counts unique videos emitted as results.
	Discovered int

	// Expanded counts entries whose related-content fetch succeeded.
	Expanded int

	// Failed counts entries abandoned after retry exhaustion.
	Failed int

	// DepthCut counts entries reported but not expanded because they
	// sat exactly at the depth limit.
	DepthCut int

	// ByDepth maps discovery depth to the number of videos found there.
	ByDepth map[int]int

	// Failures lists the entries counted in Failed.
	Failures []NodeFailure
}

// NewRunSummary returns a summary ready for incremental accumulation.
func NewRunSummary(keywords []string, maxDepth int) *RunSummary {
	return &RunSummary{
		Keywords:  keywords,
		MaxDepth:  maxDepth,
		StartedAt: time.Now(),
		ByDepth:   make(map[int]int),
	}
}
