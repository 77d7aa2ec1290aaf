// Package youtube implements the search boundary against the YouTube
// Data API v3: keyword search and related-video fetches, with API
// failures mapped onto the crawl's error taxonomy (auth, rate limit,
// transient, malformed response).
//
// The package performs no throttling or retrying of its own; callers
// wrap it behind the crawler's rate-limit and backoff gates.
package youtube
