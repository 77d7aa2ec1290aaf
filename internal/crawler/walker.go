package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vidwalk/vidwalk/internal/backoff"
	"github.com/vidwalk/vidwalk/internal/model"
)

// SearchClient is the capability the walker needs from the platform:
// keyword search for seeding and related-video fetches for expansion.
// Implementations surface failures as the typed errors in the youtube
// package; the walker never inspects concrete types, only the
// Retryable/Fatal capabilities carried by the errors themselves.
type SearchClient interface {
	// SearchByKeyword returns up to limit videos matching the keyword.
	SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.VideoRef, error)

	// FetchRelated returns videos related to ref. Identity is ref.ID;
	// the metadata rides along for expansion strategies that need it.
	FetchRelated(ctx context.Context, ref model.VideoRef) ([]model.VideoRef, error)
}

// ResultSink receives each crawl result exactly once. Sink failures are
// logged and ignored by the walker: persistence is best-effort and must
// never abort the traversal.
type ResultSink interface {
	Record(ctx context.Context, result *model.CrawlResult) error
}

// Walker drives the crawl: it seeds the frontier from keyword searches,
// then drains it breadth-first, one depth level at a time. Within a
// level, expansion fans out across a bounded worker group; children are
// admitted sequentially in entry order afterwards, so enqueue order
// stays the stable insertion order no matter how many workers raced.
type Walker struct {
	client SearchClient
	sink   ResultSink
	logger *slog.Logger

	maxDepth   int
	maxResults int
	workers    int

	visited  *VisitedSet
	frontier *Frontier
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth sets the depth cutoff. 0 = seeds only.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth >= 0 {
			w.maxDepth = depth
		}
	}
}

// WithMaxResultsPerKeyword sets the seed search page size.
func WithMaxResultsPerKeyword(n int) Option {
	return func(w *Walker) {
		if n > 0 {
			w.maxResults = n
		}
	}
}

// WithWorkers bounds concurrent expansions within a depth level.
// 1 (the default) is the sequential baseline; the rate limiter, not
// CPU, is the throughput ceiling, so keep this small.
func WithWorkers(n int) Option {
	return func(w *Walker) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithLogger sets the walker's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// New creates a Walker over the given client and sink. The client is
// expected to be gated (see GatedClient); the walker itself performs no
// throttling or retrying.
func New(client SearchClient, sink ResultSink, opts ...Option) *Walker {
	w := &Walker{
		client:     client,
		sink:       sink,
		maxDepth:   2,
		maxResults: 10,
		workers:    1,
		visited:    NewVisitedSet(),
		frontier:   NewFrontier(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.Default()
	}

	return w
}

// Run executes the crawl for the given seed keywords and returns the
// run summary. The returned error is non-nil only for run-fatal
// conditions: a rejected credential or context cancellation. Node-level
// failures are contained, logged, and counted in the summary.
//
// The summary is valid even when an error is returned; results already
// recorded before a cancellation are retained.
func (w *Walker) Run(ctx context.Context, keywords []string) (*model.RunSummary, error) {
	summary := model.NewRunSummary(keywords, w.maxDepth)
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	if err := w.seed(ctx, keywords, summary); err != nil {
		return summary, err
	}

	for w.frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			w.logger.Warn("crawl cancelled", "pending", w.frontier.Len())
			return summary, err
		}

		if err := w.expandLevel(ctx, w.frontier.PopLevel(), summary); err != nil {
			return summary, err
		}
	}

	w.logger.Info("crawl complete",
		"discovered", summary.Discovered,
		"expanded", summary.Expanded,
		"failed", summary.Failed,
		"depth_cut", summary.DepthCut,
	)
	return summary, nil
}

// seed searches each keyword and admits the hits at depth 0. A failed
// keyword search is logged and skipped unless it is fatal; a keyword
// that yields nothing simply contributes no seeds.
func (w *Walker) seed(ctx context.Context, keywords []string, summary *model.RunSummary) error {
	for _, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			return err
		}

		w.logger.Info("searching", "keyword", keyword)
		refs, err := w.client.SearchByKeyword(ctx, keyword, w.maxResults)
		if err != nil {
			if isFatal(err) {
				return fmt.Errorf("seed search for %q: %w", keyword, err)
			}
			w.logger.Error("seed search failed",
				"keyword", keyword,
				"attempts", backoff.Attempts(err),
				"error", err,
			)
			continue
		}

		for _, ref := range refs {
			w.admit(ctx, ref, 0, "", summary)
		}
	}
	return nil
}

// expandLevel processes one BFS level. Entries at the depth cutoff are
// terminal without a fetch; everything else fans out across the worker
// group. Children are admitted afterwards, in entry order.
func (w *Walker) expandLevel(ctx context.Context, level []model.FrontierEntry, summary *model.RunSummary) error {
	if len(level) == 0 {
		return nil
	}

	if level[0].Depth >= w.maxDepth {
		for _, entry := range level {
			summary.DepthCut++
			w.logger.Info("depth cut",
				"video_id", entry.Ref.ID,
				"depth", entry.Depth,
				"state", model.StateDepthCut.String(),
			)
		}
		return nil
	}

	children := make([][]model.VideoRef, len(level))
	failures := make([]error, len(level))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for i, entry := range level {
		g.Go(func() error {
			w.logger.Debug("expanding",
				"video_id", entry.Ref.ID,
				"depth", entry.Depth,
				"state", model.StateInFlight.String(),
			)

			refs, err := w.client.FetchRelated(gctx, entry.Ref)
			if err != nil {
				// Fatal failures cancel the whole group; everything
				// else is contained to this entry.
				if isFatal(err) {
					return fmt.Errorf("related fetch for %q: %w", entry.Ref.ID, err)
				}
				failures[i] = err
				return nil
			}

			children[i] = refs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, entry := range level {
		if failures[i] != nil {
			w.recordFailure(entry, failures[i], summary)
			continue
		}

		summary.Expanded++
		w.logger.Info("expanded",
			"video_id", entry.Ref.ID,
			"depth", entry.Depth,
			"children", len(children[i]),
			"state", model.StateExpanded.String(),
		)
		for _, child := range children[i] {
			w.admit(ctx, child, entry.Depth+1, entry.Ref.ID, summary)
		}
	}

	return nil
}

// admit gates ref through the visited set and, if it is new, emits its
// result and enqueues it. This is the only place results are emitted
// and the only place entries are created, which is what makes
// exactly-once emission follow directly from TryVisit.
func (w *Walker) admit(ctx context.Context, ref model.VideoRef, depth int, parent string, summary *model.RunSummary) {
	if ref.ID == "" {
		return
	}
	if !w.visited.TryVisit(ref.ID) {
		return
	}

	summary.Discovered++
	summary.ByDepth[depth]++

	result := &model.CrawlResult{
		Ref:          ref,
		Depth:        depth,
		Parent:       parent,
		DiscoveredAt: time.Now().UTC(),
	}
	if err := w.sink.Record(ctx, result); err != nil {
		// Persistence is best-effort: log and keep walking.
		w.logger.Warn("sink record failed", "video_id", ref.ID, "error", err)
	}

	w.frontier.Push(model.FrontierEntry{Ref: ref, Depth: depth, Parent: parent})
	w.logger.Debug("discovered",
		"video_id", ref.ID,
		"title", ref.Title,
		"depth", depth,
		"parent", parent,
		"state", model.StatePending.String(),
	)
}

// recordFailure books a node-level failure: logged with its retry
// history and kept on the summary, never propagated.
func (w *Walker) recordFailure(entry model.FrontierEntry, err error, summary *model.RunSummary) {
	attempts := backoff.Attempts(err)
	summary.Failed++
	summary.Failures = append(summary.Failures, model.NodeFailure{
		ID:       entry.Ref.ID,
		Depth:    entry.Depth,
		Attempts: attempts,
		Reason:   err.Error(),
	})
	w.logger.Error("expansion failed",
		"video_id", entry.Ref.ID,
		"depth", entry.Depth,
		"attempts", attempts,
		"error", err,
		"state", model.StateFailed.String(),
	)
}

// fatal is implemented by errors that must abort the run.
type fatal interface {
	Fatal() bool
}

// isFatal reports whether err carries the run-fatal capability.
func isFatal(err error) bool {
	var f fatal
	return errors.As(err, &f) && f.Fatal()
}
