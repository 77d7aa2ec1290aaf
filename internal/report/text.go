package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/vidwalk/vidwalk/internal/model"
)

// TextWriter renders a compact human-readable summary, meant for the
// terminal at the end of a run.
type TextWriter struct {
	output io.Writer
}

// NewTextWriter creates a TextWriter writing to output.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{output: output}
}

// Write renders the summary.
func (w *TextWriter) Write(summary *model.RunSummary) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Crawl finished in %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  keywords:   %s\n", strings.Join(summary.Keywords, ", "))
	fmt.Fprintf(&b, "  max depth:  %d\n", summary.MaxDepth)
	fmt.Fprintf(&b, "  discovered: %d\n", summary.Discovered)
	fmt.Fprintf(&b, "  expanded:   %d\n", summary.Expanded)
	fmt.Fprintf(&b, "  depth cut:  %d\n", summary.DepthCut)
	fmt.Fprintf(&b, "  failed:     %d\n", summary.Failed)

	for _, depth := range sortedDepths(summary.ByDepth) {
		fmt.Fprintf(&b, "  depth %d: %d videos\n", depth, summary.ByDepth[depth])
	}

	for _, f := range summary.Failures {
		fmt.Fprintf(&b, "  FAILED %s (depth %d, %d attempts): %s\n", f.ID, f.Depth, f.Attempts, f.Reason)
	}

	return io.WriteString(w.output, b.String())
}

// sortedDepths returns the map's keys in ascending order so output
// order is stable run to run.
func sortedDepths(byDepth map[int]int) []int {
	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	return depths
}
