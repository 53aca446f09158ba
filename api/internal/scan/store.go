package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"snap-solver/api/internal/blob"
)

var ErrNotFound = errors.New("scan: record not found")

// Store keeps the scan history ordered most-recent-first and mirrors
// every mutation into the snapshot blob before the call returns.
type Store struct {
	mu      sync.Mutex
	snap    blob.Store
	records []Record
}

func NewStore(snap blob.Store) *Store { return &Store{snap: snap} }

// Load reads the snapshot. A missing or malformed snapshot is logged and
// treated as an empty history; it is never surfaced to callers.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.snap.Load(ctx)
	if err != nil {
		log.Printf("history: load failed, starting empty: %v", err)
		s.records = nil
		return
	}
	if len(data) == 0 {
		s.records = nil
		return
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		log.Printf("history: corrupt snapshot, starting empty: %v", err)
		s.records = nil
		return
	}
	s.records = recs
}

// List returns a copy of the history, most recent first.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			return s.records[i], true
		}
	}
	return Record{}, false
}

// Upsert inserts an unseen record at the front or replaces a known one in
// place. Updates never reorder the collection.
func (s *Store) Upsert(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		s.records = append([]Record{rec}, s.records...)
	}
	return s.persistLocked(ctx)
}

// Update applies fn to the record with id and persists the result, all
// under the store lock. It reports false when the id is absent; an absent
// record stays absent, so a mutation can never re-insert a deleted one.
func (s *Store) Update(ctx context.Context, id string, fn func(*Record)) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			fn(&s.records[i])
			return s.records[i], true, s.persistLocked(ctx)
		}
	}
	return Record{}, false, nil
}

// Delete removes the record if present. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.persistLocked(ctx)
		}
	}
	return nil
}

// Save forces a persist of the current collection.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// persistLocked serializes the whole collection while holding the lock,
// so overlapping mutations never interleave partial snapshots: the last
// snapshot written is always a complete document.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.snap.Save(ctx, data); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}
