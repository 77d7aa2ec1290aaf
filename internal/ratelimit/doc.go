// Package ratelimit meters outbound API requests with a token bucket.
// Every request attempt, retries included, consumes one token, so the
// configured requests-per-second budget holds across the whole process
// no matter how many workers share the limiter.
package ratelimit
