// Package model defines the core data types shared across vidwalk.
// It holds video references, frontier entries with their state machine,
// crawl results, and run summaries. The package is intentionally free of
// dependencies so that every other package can import it.
package model
