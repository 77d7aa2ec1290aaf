// Package report renders run summaries for humans: a plain text form
// for the terminal and a Markdown form for files and sharing.
package report
