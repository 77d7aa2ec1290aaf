package report

import "github.com/vidwalk/vidwalk/internal/model"

// Writer renders a run summary to its configured destination.
type Writer interface {
	// Write renders the summary. Returns the number of bytes written.
	Write(summary *model.RunSummary) (int, error)
}
