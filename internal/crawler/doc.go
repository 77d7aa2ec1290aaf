// Package crawler implements the traversal engine: a depth-bounded,
// deduplicating breadth-first walk over the related-video graph, driven
// by a token-metered, backoff-protected search client.
//
// The Walker owns the frontier queue and the visited set; the
// GatedClient wraps any SearchClient so that every outbound call passes
// the rate limiter and the retry policy. Network code and persistence
// live behind the SearchClient and ResultSink interfaces.
package crawler
