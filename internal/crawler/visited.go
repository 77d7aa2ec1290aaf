package crawler

import "sync"

// VisitedSet tracks which video ids have already been turned into
// frontier entries during this run. One run owns one set; it only
// grows, which is accepted for run-scoped lifetimes.
type VisitedSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewVisitedSet returns an empty set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// TryVisit records id as visited and returns true if it was new, false
// with no state change otherwise. Check and insert are a single
// operation under the lock; there is deliberately no separate "has"
// accessor that could be raced against an insert.
func (v *VisitedSet) TryVisit(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.seen[id]; ok {
		return false
	}
	v.seen[id] = struct{}{}
	return true
}

// Len returns the number of visited ids.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
