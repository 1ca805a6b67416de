// Package accumulator implements the deduplicating set vendor scrapers
// insert artifact records into (spec §4.5).
package accumulator

import (
	"sync"

	"github.com/jmeta/jmeta/artifact"
)

// Set is a concurrency-safe, first-writer-wins set of artifact records
// keyed by identity. Multiple vendor workers, or multiple per-release
// workers within one vendor, may call Add concurrently; per-record
// identity makes insertion order irrelevant, so Set needs no more than a
// single mutex guarding a map (spec §4.5, §5).
type Set struct {
	mu   sync.Mutex
	byID map[artifact.Identity]artifact.Record
}

// New returns an empty Set.
func New() *Set {
	return &Set{byID: make(map[artifact.Identity]artifact.Record)}
}

// Add inserts r if no record with the same identity is already present.
// A duplicate insertion is a no-op; the first writer wins.
func (s *Set) Add(r artifact.Record) {
	r.SortFeatures()
	id := r.Identity()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; ok {
		return
	}
	s.byID[id] = r
}

// Len reports the number of distinct records currently held.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Records returns a snapshot slice of all accumulated records. The
// returned slice is safe for the caller to mutate or sort further; it
// does not alias Set's internal storage.
func (s *Set) Records() []artifact.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]artifact.Record, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	return out
}

// Merge unions other into s, first-writer-wins on any identity collision
// between the two sets (s's existing entry, if any, is kept), matching
// the per-vendor-local-set-then-union strategy spec §4.5 allows.
func (s *Set) Merge(other *Set) {
	other.mu.Lock()
	snapshot := make([]artifact.Record, 0, len(other.byID))
	for _, r := range other.byID {
		snapshot = append(snapshot, r)
	}
	other.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range snapshot {
		id := r.Identity()
		if _, ok := s.byID[id]; ok {
			continue
		}
		s.byID[id] = r
	}
}
