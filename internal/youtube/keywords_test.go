package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/vidwalk/vidwalk/internal/model"
)

// TestExtractKeywords covers word splitting, folding, deduplication, and
// the empty-description rule.
func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	t.Run("empty description yields no keywords", func(t *testing.T) {
		t.Parallel()
		if got := ExtractKeywords("A Perfectly Good Title", ""); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("whitespace-only description yields no keywords", func(t *testing.T) {
		t.Parallel()
		if got := ExtractKeywords("Title", "   \n\t "); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("title words come first, folded", func(t *testing.T) {
		t.Parallel()

		got := ExtractKeywords("Go Concurrency", "patterns explained")
		want := []string{"go", "concurrency", "patterns", "explained"}
		assertKeywords(t, got, want)
	})

	t.Run("duplicates keep first appearance only", func(t *testing.T) {
		t.Parallel()

		got := ExtractKeywords("Go Go GO", "why go is fast")
		want := []string{"go", "why", "is", "fast"}
		assertKeywords(t, got, want)
	})

	t.Run("punctuation splits words", func(t *testing.T) {
		t.Parallel()

		got := ExtractKeywords("Rust vs. Go: 2024!", "a comparison")
		want := []string{"rust", "vs", "go", "2024", "a", "comparison"}
		assertKeywords(t, got, want)
	})

	t.Run("non-latin scripts survive", func(t *testing.T) {
		t.Parallel()

		got := ExtractKeywords("Программирование", "на Go")
		want := []string{"программирование", "на", "go"}
		assertKeywords(t, got, want)
	})
}

func assertKeywords(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d: expected '%s', got '%s'", i, want[i], got[i])
		}
	}
}

// searchRecorder is a searcher double that records the keywords and
// limits it was asked for.
type searchRecorder struct {
	keywords []string
	limits   []int
	results  map[string][]model.VideoRef
	err      error
}

func (s *searchRecorder) SearchByKeyword(_ context.Context, keyword string, limit int) ([]model.VideoRef, error) {
	s.keywords = append(s.keywords, keyword)
	s.limits = append(s.limits, limit)
	if s.err != nil {
		return nil, s.err
	}
	return s.results[keyword], nil
}

// TestKeywordExpanderFetchRelated verifies derived searches and result
// concatenation.
func TestKeywordExpanderFetchRelated(t *testing.T) {
	t.Parallel()

	t.Run("searches capped derived keywords in order", func(t *testing.T) {
		t.Parallel()

		rec := &searchRecorder{results: map[string][]model.VideoRef{
			"go":       {{ID: "vid00000001"}},
			"routines": {{ID: "vid00000002"}, {ID: "vid00000003"}},
		}}
		expander := NewKeywordExpander(rec, WithMaxKeywords(2), WithPerKeywordResults(7))

		ref := model.VideoRef{
			Title:       "Go Routines Deep Dive",
			Description: "scheduling internals",
		}
		refs, err := expander.FetchRelated(context.Background(), ref)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		wantKeywords := []string{"go", "routines"}
		if len(rec.keywords) != 2 || rec.keywords[0] != wantKeywords[0] || rec.keywords[1] != wantKeywords[1] {
			t.Errorf("expected searches for %v, got %v", wantKeywords, rec.keywords)
		}
		for _, limit := range rec.limits {
			if limit != 7 {
				t.Errorf("expected per-keyword limit 7, got %d", limit)
			}
		}
		if len(refs) != 3 {
			t.Errorf("expected 3 concatenated refs, got %d", len(refs))
		}
	})

	t.Run("no description means no children and no searches", func(t *testing.T) {
		t.Parallel()

		rec := &searchRecorder{}
		expander := NewKeywordExpander(rec)

		refs, err := expander.FetchRelated(context.Background(), model.VideoRef{Title: "Only A Title"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if refs != nil {
			t.Errorf("expected nil refs, got %v", refs)
		}
		if len(rec.keywords) != 0 {
			t.Errorf("expected no searches, got %v", rec.keywords)
		}
	})

	t.Run("search failure names the derived keyword", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("boom")
		rec := &searchRecorder{err: sentinel}
		expander := NewKeywordExpander(rec)

		_, err := expander.FetchRelated(context.Background(), model.VideoRef{
			Title:       "Jazz Standards",
			Description: "piano solos",
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
	})
}

// TestKeywordExpanderSearchByKeyword verifies seed searches pass through.
func TestKeywordExpanderSearchByKeyword(t *testing.T) {
	t.Parallel()

	rec := &searchRecorder{results: map[string][]model.VideoRef{
		"seed": {{ID: "vid00000009"}},
	}}
	expander := NewKeywordExpander(rec)

	refs, err := expander.SearchByKeyword(context.Background(), "seed", 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(refs) != 1 || refs[0].ID != "vid00000009" {
		t.Errorf("unexpected refs: %+v", refs)
	}
	if len(rec.limits) != 1 || rec.limits[0] != 10 {
		t.Errorf("expected the caller's limit to pass through, got %v", rec.limits)
	}
}
