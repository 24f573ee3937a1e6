// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
// Safe for concurrent use. Used in tests and as a seed target.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[int]Category
	products   map[int]Product
	nextCatID  int
	nextProdID int
}

// Interface compliance check.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[int]Category),
		products:   make(map[int]Product),
		nextCatID:  1,
		nextProdID: 1,
	}
}

// AddCategory inserts a category. A zero ID is assigned from the internal
// sequence; a non-zero ID is kept, which lets tests pin IDs.
func (s *MemoryStore) AddCategory(_ context.Context, c Category) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = s.nextCatID
	}
	if c.ID >= s.nextCatID {
		s.nextCatID = c.ID + 1
	}
	s.categories[c.ID] = c
	return c, nil
}

// AddProduct inserts a product, assigning an ID when none is set.
func (s *MemoryStore) AddProduct(_ context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextProdID
	}
	if p.ID >= s.nextProdID {
		s.nextProdID = p.ID + 1
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *MemoryStore) ProductByID(_ context.Context, id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ProductBySlug(_ context.Context, slug string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *MemoryStore) ListAvailable(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Available {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListByCategory(ctx context.Context, categorySlug string) ([]Product, error) {
	s.mu.RLock()
	var catID int
	found := false
	for _, c := range s.categories {
		if c.Slug == categorySlug {
			catID = c.ID
			found = true
			break
		}
	}
	s.mu.RUnlock()

	if !found {
		return nil, ErrNotFound
	}

	all, err := s.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.CategoryID == catID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]Product, error) {
	all, err := s.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemoryStore) Categories(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CategoryByID(_ context.Context, id int) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}
