package sink

import (
	"context"
	"errors"
	"io"

	"github.com/vidwalk/vidwalk/internal/crawler"
	"github.com/vidwalk/vidwalk/internal/model"
)

// Multi fans each result out to several sinks. Every sink sees every
// result even when an earlier sink fails; the failures are joined into
// the returned error so the walker can log them all at once.
type Multi struct {
	sinks []crawler.ResultSink
}

// NewMulti combines the given sinks.
func NewMulti(sinks ...crawler.ResultSink) *Multi {
	return &Multi{sinks: sinks}
}

// Record delivers the result to every sink.
func (m *Multi) Record(ctx context.Context, result *model.CrawlResult) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Record(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that is closable.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
