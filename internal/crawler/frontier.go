package crawler

import "github.com/vidwalk/vidwalk/internal/model"

// Frontier is the FIFO work queue of discovered-but-unexpanded entries.
// FIFO order over depth-tagged entries yields a breadth-first walk, so
// entries are always depth-sorted and each depth level forms a
// contiguous run at the front of the queue.
//
// The frontier is accessed only by the walker's coordinating goroutine;
// expansion workers never touch it, so it needs no locking.
type Frontier struct {
	entries []model.FrontierEntry
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push appends an entry. Insertion order is the tie-break between
// entries at the same depth.
func (f *Frontier) Push(e model.FrontierEntry) {
	f.entries = append(f.entries, e)
}

// Len returns the number of pending entries.
func (f *Frontier) Len() int {
	return len(f.entries)
}

// PopLevel removes and returns the contiguous run of entries sharing
// the front entry's depth: one complete BFS level. Returns nil when
// the frontier is empty.
func (f *Frontier) PopLevel() []model.FrontierEntry {
	if len(f.entries) == 0 {
		return nil
	}

	depth := f.entries[0].Depth
	n := 0
	for n < len(f.entries) && f.entries[n].Depth == depth {
		n++
	}

	level := f.entries[:n:n]
	f.entries = f.entries[n:]
	return level
}
