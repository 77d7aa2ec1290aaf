package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vidwalk/vidwalk/internal/model"
)

func testResult(id string, depth int, parent string) *model.CrawlResult {
	return &model.CrawlResult{
		Ref: model.VideoRef{
			ID:      id,
			Title:   "Title of " + id,
			Channel: "Channel",
		},
		Depth:        depth,
		Parent:       parent,
		DiscoveredAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

// TestJSONLRecord verifies each result becomes exactly one parsable
// line with the expected fields.
func TestJSONLRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.jsonl")
	sink, err := NewJSONL(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ctx := context.Background()
	if err := sink.Record(ctx, testResult("abc123def45", 0, "")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.Record(ctx, testResult("xyz789ghi01", 1, "abc123def45")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if first["video_id"] != "abc123def45" {
		t.Errorf("expected video_id 'abc123def45', got %v", first["video_id"])
	}
	if first["url"] != "https://www.youtube.com/watch?v=abc123def45" {
		t.Errorf("unexpected url: %v", first["url"])
	}
	if first["depth"] != float64(0) {
		t.Errorf("expected depth 0, got %v", first["depth"])
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("second line is not valid JSON: %v", err)
	}
	if second["parent_id"] != "abc123def45" {
		t.Errorf("expected parent_id 'abc123def45', got %v", second["parent_id"])
	}
}

// TestJSONLAppendsAcrossOpens verifies reopening the same path appends
// rather than truncates.
func TestJSONLAppendsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.jsonl")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		sink, err := NewJSONL(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := sink.Record(ctx, testResult("abc123def45", 0, "")); err != nil {
			t.Fatal(err)
		}
		if err := sink.Close(); err != nil {
			t.Fatal(err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 lines after two append sessions, got %d", count)
	}
}

// countingSink counts records; erroringSink always fails.
type countingSink struct{ count int }

func (s *countingSink) Record(context.Context, *model.CrawlResult) error {
	s.count++
	return nil
}

type erroringSink struct{}

func (erroringSink) Record(context.Context, *model.CrawlResult) error {
	return errors.New("broken sink")
}

// TestMultiDeliversToAllSinks verifies fan-out continues past failures.
func TestMultiDeliversToAllSinks(t *testing.T) {
	t.Parallel()

	a := &countingSink{}
	b := &countingSink{}
	multi := NewMulti(a, erroringSink{}, b)

	err := multi.Record(context.Background(), testResult("abc123def45", 0, ""))
	if err == nil {
		t.Error("expected the broken sink's error to surface")
	}
	if a.count != 1 || b.count != 1 {
		t.Errorf("expected both healthy sinks to receive the result, got %d and %d", a.count, b.count)
	}
}

// TestMultiCloseClosesClosables verifies Close reaches closable sinks
// and skips the rest.
func TestMultiCloseClosesClosables(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.jsonl")
	jsonl, err := NewJSONL(path)
	if err != nil {
		t.Fatal(err)
	}

	multi := NewMulti(jsonl, &countingSink{})
	if err := multi.Record(context.Background(), testResult("abc123def45", 0, "")); err != nil {
		t.Fatal(err)
	}
	if err := multi.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The buffered line must have been flushed by the close.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "abc123def45") {
		t.Error("expected the flushed result in the file")
	}
}
