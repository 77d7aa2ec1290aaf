package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/vidwalk/vidwalk/internal/model"
)

// MarkdownWriter renders the run summary as GitHub-flavored Markdown,
// suitable for committing next to the result file or pasting into an
// issue.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the summary.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Keywords", strings.Join(summary.Keywords, ", ")},
			{"Max depth", strconv.Itoa(summary.MaxDepth)},
			{"Started", summary.StartedAt.Format(time.RFC3339)},
			{"Duration", summary.Duration.Round(time.Millisecond).String()},
			{"Videos discovered", strconv.Itoa(summary.Discovered)},
			{"Entries expanded", strconv.Itoa(summary.Expanded)},
			{"Entries depth-cut", strconv.Itoa(summary.DepthCut)},
			{"Entries failed", strconv.Itoa(summary.Failed)},
		},
	})
	md.PlainText("")

	w.writeDepths(md, summary)
	w.writeFailures(md, summary)

	return len(md.String()), md.Build()
}

// writeDepths renders the per-depth discovery table.
func (w *MarkdownWriter) writeDepths(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.ByDepth) == 0 {
		return
	}

	rows := make([][]string, 0, len(summary.ByDepth))
	for _, depth := range sortedDepths(summary.ByDepth) {
		rows = append(rows, []string{strconv.Itoa(depth), strconv.Itoa(summary.ByDepth[depth])})
	}

	md.H2("Discoveries by depth")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Depth", "Videos"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures renders the failed-entry table, if any entries failed.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.Failures) == 0 {
		return
	}

	rows := make([][]string, 0, len(summary.Failures))
	for _, f := range summary.Failures {
		rows = append(rows, []string{"`" + f.ID + "`", strconv.Itoa(f.Depth), strconv.Itoa(f.Attempts), f.Reason})
	}

	md.H2("Failed entries")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Video", "Depth", "Attempts", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}
