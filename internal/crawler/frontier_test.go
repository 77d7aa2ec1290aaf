package crawler

import (
	"testing"

	"github.com/vidwalk/vidwalk/internal/model"
)

func entry(id string, depth int) model.FrontierEntry {
	return model.FrontierEntry{Ref: model.VideoRef{ID: id}, Depth: depth}
}

// TestFrontierPopLevel verifies whole-level dequeueing and FIFO order
// within a level.
func TestFrontierPopLevel(t *testing.T) {
	t.Parallel()

	t.Run("empty frontier pops nil", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		if got := f.PopLevel(); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("pops one contiguous depth run at a time", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Push(entry("a", 0))
		f.Push(entry("b", 0))
		f.Push(entry("c", 1))
		f.Push(entry("d", 1))
		f.Push(entry("e", 1))

		level := f.PopLevel()
		if len(level) != 2 {
			t.Fatalf("expected 2 entries at depth 0, got %d", len(level))
		}
		if level[0].Ref.ID != "a" || level[1].Ref.ID != "b" {
			t.Errorf("expected [a b] in insertion order, got [%s %s]", level[0].Ref.ID, level[1].Ref.ID)
		}
		if f.Len() != 3 {
			t.Errorf("expected 3 entries remaining, got %d", f.Len())
		}

		level = f.PopLevel()
		if len(level) != 3 {
			t.Fatalf("expected 3 entries at depth 1, got %d", len(level))
		}
		if f.Len() != 0 {
			t.Errorf("expected empty frontier, got %d", f.Len())
		}
	})

	t.Run("pushes after a pop do not alias the popped level", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Push(entry("a", 0))
		level := f.PopLevel()

		f.Push(entry("b", 1))
		if level[0].Ref.ID != "a" {
			t.Errorf("popped level mutated by later push: %v", level)
		}
	})
}
