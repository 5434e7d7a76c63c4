package models

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EntryStore owns the journal's entry collection, newest first.
type EntryStore struct {
	mu       sync.RWMutex
	entries  []FoodEntry
	revision uint64
	now      func() time.Time
	newID    func() string
}

func NewEntryStore() *EntryStore {
	return NewEntryStoreWith(time.Now, func() string { return uuid.New().String() })
}

// NewEntryStoreWith lets callers pin the clock and the id generator.
func NewEntryStoreWith(now func() time.Time, newID func() string) *EntryStore {
	return &EntryStore{
		entries: make([]FoodEntry, 0),
		now:     now,
		newID:   newID,
	}
}

// Append turns records into entries sharing rawInput and one timestamp and
// prepends them as a block, keeping the order of records. It returns the
// created entries.
func (s *EntryStore) Append(records []NutritionData, rawInput string) []FoodEntry {
	if len(records) == 0 {
		return []FoodEntry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[string]struct{}, len(s.entries)+len(records))
	for _, e := range s.entries {
		taken[e.ID] = struct{}{}
	}

	ts := s.now().UnixMilli()
	created := make([]FoodEntry, 0, len(records))
	for _, r := range records {
		created = append(created, FoodEntry{
			NutritionData: r,
			ID:            s.freshID(taken),
			Timestamp:     ts,
			RawInput:      rawInput,
		})
	}

	next := make([]FoodEntry, 0, len(created)+len(s.entries))
	next = append(next, created...)
	next = append(next, s.entries...)
	s.entries = next
	s.revision++

	return slices.Clone(created)
}

func (s *EntryStore) freshID(taken map[string]struct{}) string {
	for {
		id := s.newID()
		if _, dup := taken[id]; !dup && id != "" {
			taken[id] = struct{}{}
			return id
		}
	}
}

// Remove deletes the entry with the given id and reports whether it existed.
func (s *EntryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(e FoodEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(slices.Clone(s.entries), i, i+1)
	s.revision++
	return true
}

// Replace installs a restored collection. Later duplicates of an id are
// dropped and entries without an id get a fresh one. It reports whether
// the installed collection differs from entries.
func (s *EntryStore) Replace(entries []FoodEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID != "" {
			taken[e.ID] = struct{}{}
		}
	}

	changed := false
	seen := make(map[string]struct{}, len(entries))
	next := make([]FoodEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			e.ID = s.freshID(taken)
			changed = true
		} else if _, dup := seen[e.ID]; dup {
			changed = true
			continue
		}
		seen[e.ID] = struct{}{}
		next = append(next, e)
	}

	s.entries = next
	s.revision++
	return changed
}

// Snapshot returns a copy of the collection.
func (s *EntryStore) Snapshot() []FoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// View returns a snapshot together with the revision it belongs to.
func (s *EntryStore) View() ([]FoodEntry, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries), s.revision
}

func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Revision grows by one on every mutation.
func (s *EntryStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}
