// Package sink provides ResultSink implementations: an append-only
// JSONL flat file, the sqlite run-history database, and a fan-out
// combinator. Sinks are best-effort collaborators; the walker logs and
// ignores their failures.
package sink
