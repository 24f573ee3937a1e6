// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package interaction

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation, safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	nextID  int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory interaction store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Add(_ context.Context, r Record) (Record, error) {
	if err := r.Validate(); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID
	s.nextID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, r)
	return r, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
