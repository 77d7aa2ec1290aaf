package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/vidwalk/vidwalk/internal/model"
)

// record is the on-disk shape of one result line. Marshalling a struct
// keeps the field order stable for the lifetime of a run, which is what
// makes the file machine-parsable line by line.
type record struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	URL          string    `json:"url"`
	Depth        int       `json:"depth"`
	ParentID     string    `json:"parent_id"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// JSONL appends crawl results to a flat file, one JSON object per line.
// Safe for concurrent Record calls.
type JSONL struct {
	mu   sync.Mutex
	file *os.File
	w    *bufio.Writer
}

// NewJSONL opens (or creates) the file at path for appending.
func NewJSONL(path string) (*JSONL, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // User-chosen output path
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return &JSONL{file: f, w: bufio.NewWriter(f)}, nil
}

// Record appends one result line.
func (s *JSONL) Record(_ context.Context, result *model.CrawlResult) error {
	line, err := json.Marshal(record{
		VideoID:      result.Ref.ID,
		Title:        result.Ref.Title,
		Channel:      result.Ref.Channel,
		URL:          result.Ref.WatchURL(),
		Depth:        result.Depth,
		ParentID:     result.Parent,
		DiscoveredAt: result.DiscoveredAt,
	})
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(line); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// Close flushes buffered lines and closes the file.
func (s *JSONL) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.w.Flush(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("flush output file: %w", err)
	}
	return s.file.Close()
}
