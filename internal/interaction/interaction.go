// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package interaction records user activity against catalog products and
// defines the weighting policy every recommendation strategy shares.
//
// # Weighting Policy
//
// Each interaction kind contributes a fixed weight to the user's implicit
// preference for a product:
//
//	view      1
//	cart      3
//	purchase  5
//	rating    2 x rating value (1..5)
//
// Weights are additive: a user who viewed a product twice and then bought
// it carries weight 7 for that product.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind identifies the type of a user-product interaction.
type Kind string

const (
	KindView     Kind = "view"
	KindCart     Kind = "cart"
	KindPurchase Kind = "purchase"
	KindRating   Kind = "rating"
)

// Valid reports whether k is a known interaction kind.
func (k Kind) Valid() bool {
	switch k {
	case KindView, KindCart, KindPurchase, KindRating:
		return true
	default:
		return false
	}
}

// Base weights per interaction kind.
const (
	weightView     = 1.0
	weightCart     = 3.0
	weightPurchase = 5.0
	ratingFactor   = 2.0
)

// ErrInvalidRating is returned when a rating interaction carries a rating
// outside 1..5, or a non-rating interaction carries one at all.
var ErrInvalidRating = errors.New("interaction: rating must be between 1 and 5")

// Record is a single user-product interaction event.
type Record struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Kind      Kind      `json:"kind"`
	Rating    int       `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Weight returns the record's contribution under the shared weighting
// policy. Unknown kinds and out-of-range ratings weigh zero.
func (r Record) Weight() float64 {
	switch r.Kind {
	case KindView:
		return weightView
	case KindCart:
		return weightCart
	case KindPurchase:
		return weightPurchase
	case KindRating:
		if r.Rating < 1 || r.Rating > 5 {
			return 0
		}
		return ratingFactor * float64(r.Rating)
	default:
		return 0
	}
}

// Validate checks the record's fields before storage.
func (r Record) Validate() error {
	if r.UserID <= 0 {
		return fmt.Errorf("interaction: user_id must be positive, got %d", r.UserID)
	}
	if r.ProductID <= 0 {
		return fmt.Errorf("interaction: product_id must be positive, got %d", r.ProductID)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("interaction: unknown kind %q", r.Kind)
	}
	if r.Kind == KindRating && (r.Rating < 1 || r.Rating > 5) {
		return ErrInvalidRating
	}
	if r.Kind != KindRating && r.Rating != 0 {
		return ErrInvalidRating
	}
	return nil
}

// Store is the interface over the interaction log.
type Store interface {
	// Add appends a record after validation and returns it with its ID.
	Add(ctx context.Context, r Record) (Record, error)

	// ListAll returns every record ordered by ID ascending.
	ListAll(ctx context.Context) ([]Record, error)

	// ListByUser returns the records for one user ordered by ID ascending.
	ListByUser(ctx context.Context, userID int) ([]Record, error)
}

// Matrix builds the additive user -> product -> weight matrix from records.
// Every strategy that needs user vectors starts here.
func Matrix(records []Record) map[int]map[int]float64 {
	m := make(map[int]map[int]float64)
	for _, r := range records {
		row, ok := m[r.UserID]
		if !ok {
			row = make(map[int]float64)
			m[r.UserID] = row
		}
		row[r.ProductID] += r.Weight()
	}
	return m
}

// ProductWeights accumulates the total interaction weight per product.
func ProductWeights(records []Record) map[int]float64 {
	w := make(map[int]float64, len(records))
	for _, r := range records {
		w[r.ProductID] += r.Weight()
	}
	return w
}

// ProductCounts returns the raw interaction count per product, ignoring
// weights. The noise filter in the clean strategy uses counts, not weights.
func ProductCounts(records []Record) map[int]int {
	c := make(map[int]int, len(records))
	for _, r := range records {
		c[r.ProductID]++
	}
	return c
}
