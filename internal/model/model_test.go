package model

import "testing"

// TestVideoRefWatchURL verifies the canonical watch URL shape.
func TestVideoRefWatchURL(t *testing.T) {
	t.Parallel()

	ref := VideoRef{ID: "dQw4w9WgXcQ", Title: "Test Video"}
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := ref.WatchURL(); got != want {
		t.Errorf("expected '%s', got '%s'", want, got)
	}
}

// TestEntryStateString verifies the log-facing state names.
func TestEntryStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state EntryState
		want  string
	}{
		{StatePending, "pending"},
		{StateInFlight, "in_flight"},
		{StateExpanded, "expanded"},
		{StateFailed, "failed"},
		{StateDepthCut, "depth_cut"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.state.String(); got != tt.want {
				t.Errorf("expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

// TestNewRunSummary verifies the summary starts zeroed with its inputs
// recorded and the by-depth map ready for use.
func TestNewRunSummary(t *testing.T) {
	t.Parallel()

	keywords := []string{"jazz", "blues"}
	summary := NewRunSummary(keywords, 3)

	if len(summary.Keywords) != 2 || summary.Keywords[0] != "jazz" {
		t.Errorf("unexpected keywords: %v", summary.Keywords)
	}
	if summary.MaxDepth != 3 {
		t.Errorf("expected MaxDepth 3, got %d", summary.MaxDepth)
	}
	if summary.Discovered != 0 || summary.Expanded != 0 || summary.Failed != 0 {
		t.Errorf("expected zeroed counters, got %+v", summary)
	}
	if summary.ByDepth == nil {
		t.Fatal("expected ByDepth map to be initialized")
	}
	if summary.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}

	// The map must be writable without further setup.
	summary.ByDepth[0]++
	if summary.ByDepth[0] != 1 {
		t.Errorf("expected ByDepth[0] to be 1, got %d", summary.ByDepth[0])
	}
}
