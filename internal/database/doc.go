// Package database provides SQLite-backed storage for crawl run
// history: one row per run plus the videos discovered in it. History is
// optional; a run without a configured database directory persists
// nothing here.
package database
