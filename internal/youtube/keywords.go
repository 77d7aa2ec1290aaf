package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/vidwalk/vidwalk/internal/model"
)

// wordPattern matches word runs in titles and descriptions.
// Letters and digits in any script count; punctuation splits.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// ExtractKeywords derives search keywords from a video's title and
// description: case-folded words from both, deduplicated, in first
// appearance order. An empty description returns nil, which disables
// keyword expansion for that video — a title alone is too generic to
// spider on.
func ExtractKeywords(title, description string) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	// Unicode case folding rather than ASCII lowercasing: titles are
	// routinely non-English.
	folder := cases.Fold()

	seen := make(map[string]struct{})
	var keywords []string
	for _, source := range []string{title, description} {
		for _, word := range wordPattern.FindAllString(folder.String(source), -1) {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			keywords = append(keywords, word)
		}
	}

	return keywords
}

// searcher is the slice of the search capability the expander needs.
type searcher interface {
	SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.VideoRef, error)
}

// KeywordExpander discovers related videos by searching keywords
// derived from each video's own metadata, the way the original crawler
// did, instead of calling the related-videos endpoint. It wraps a
// search client (normally the rate-limit/backoff gated one, so every
// derived search passes both gates) and satisfies the crawler's
// SearchClient contract.
type KeywordExpander struct {
	searcher    searcher
	maxKeywords int
	perKeyword  int
}

// KeywordExpanderOption configures a KeywordExpander.
type KeywordExpanderOption func(*KeywordExpander)

// WithMaxKeywords caps how many derived keywords are searched per video.
func WithMaxKeywords(n int) KeywordExpanderOption {
	return func(e *KeywordExpander) {
		if n > 0 {
			e.maxKeywords = n
		}
	}
}

// WithPerKeywordResults sets the page size for each derived search.
func WithPerKeywordResults(n int) KeywordExpanderOption {
	return func(e *KeywordExpander) {
		if n > 0 {
			e.perKeyword = n
		}
	}
}

// NewKeywordExpander wraps s with keyword-derived related discovery.
func NewKeywordExpander(s searcher, opts ...KeywordExpanderOption) *KeywordExpander {
	e := &KeywordExpander{
		searcher:    s,
		maxKeywords: 5,
		perKeyword:  10,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SearchByKeyword delegates seed searches to the wrapped client.
func (e *KeywordExpander) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.VideoRef, error) {
	return e.searcher.SearchByKeyword(ctx, keyword, limit)
}

// FetchRelated searches the first maxKeywords keywords derived from
// ref's metadata and concatenates the hits. Videos without a
// description yield no children. The walker's visited set handles the
// heavy overlap between per-keyword result pages.
func (e *KeywordExpander) FetchRelated(ctx context.Context, ref model.VideoRef) ([]model.VideoRef, error) {
	keywords := ExtractKeywords(ref.Title, ref.Description)
	if len(keywords) == 0 {
		return nil, nil
	}
	if len(keywords) > e.maxKeywords {
		keywords = keywords[:e.maxKeywords]
	}

	var related []model.VideoRef
	for _, keyword := range keywords {
		refs, err := e.searcher.SearchByKeyword(ctx, keyword, e.perKeyword)
		if err != nil {
			return nil, fmt.Errorf("derived keyword %q: %w", keyword, err)
		}
		related = append(related, refs...)
	}

	return related, nil
}
