// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/interaction"
)

// DefaultLimit is the number of recommendations returned when the request
// does not specify one.
const DefaultLimit = 5

// Request describes a single recommendation query.
type Request struct {
	// UserID is the user to recommend for. Required.
	UserID int `json:"user_id" validate:"required,min=1"`

	// Method selects the strategy: hybrid, collaborative, content,
	// clustering, clean or popularity. Empty selects hybrid.
	Method string `json:"method,omitempty"`

	// ProductID is the seed product for content-based recommendations.
	ProductID int `json:"product_id,omitempty" validate:"omitempty,min=1"`

	// Limit caps the number of results. Zero or negative selects
	// DefaultLimit; LimitSet distinguishes an explicit zero.
	Limit int `json:"limit,omitempty" validate:"omitempty,min=0,max=100"`

	// LimitSet marks Limit as explicitly provided, so that limit=0
	// yields an empty result instead of the default.
	LimitSet bool `json:"-"`
}

// Recommendation is a single recommended product with its strategy score.
// Padding entries carry score zero.
type Recommendation struct {
	Product catalog.Product `json:"product"`
	Score   float64         `json:"score"`
}

// Response is the result of a recommendation query.
type Response struct {
	UserID      int              `json:"user_id"`
	Method      string           `json:"method"`
	Results     []Recommendation `json:"results"`
	FellBack    bool             `json:"fell_back,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ScoredID is a product ID with a strategy score, before catalog resolution.
type ScoredID struct {
	ProductID int
	Score     float64
}

// Dataset is the snapshot of catalog and interaction data a strategy works
// on. The engine assembles one per request so that every strategy sees a
// consistent view.
type Dataset struct {
	// Products holds all available products ordered by ID ascending.
	Products []catalog.Product

	// ProductByID indexes Products.
	ProductByID map[int]catalog.Product

	// Categories indexes all categories by ID.
	Categories map[int]catalog.Category

	// Records is the full interaction log ordered by ID ascending.
	Records []interaction.Record
}

// NewDataset builds the index maps over the given products, categories and
// records.
func NewDataset(products []catalog.Product, categories []catalog.Category, records []interaction.Record) *Dataset {
	ds := &Dataset{
		Products:    products,
		ProductByID: make(map[int]catalog.Product, len(products)),
		Categories:  make(map[int]catalog.Category, len(categories)),
		Records:     records,
	}
	for _, p := range products {
		ds.ProductByID[p.ID] = p
	}
	for _, c := range categories {
		ds.Categories[c.ID] = c
	}
	return ds
}

// UserProducts returns the set of product IDs the user has interacted with.
func (d *Dataset) UserProducts(userID int) map[int]struct{} {
	owned := make(map[int]struct{})
	for _, r := range d.Records {
		if r.UserID == userID {
			owned[r.ProductID] = struct{}{}
		}
	}
	return owned
}

// CategoryName returns the name of the category with the given ID, or the
// empty string when unknown.
func (d *Dataset) CategoryName(id int) string {
	return d.Categories[id].Name
}

// Strategy computes an ordered list of scored product IDs for a request.
//
// Implementations must be deterministic: the same dataset and request
// always produce the same ordered result. They must never return products
// the user already interacted with (popularity, used as the fallback
// baseline, is the one exception), never return duplicates, and only
// return IDs present in the dataset.
type Strategy interface {
	// Name returns the method string the dispatcher routes on.
	Name() string

	// Recommend returns up to limit scored product IDs.
	// Returning ErrInsufficientData makes the engine fall back to
	// popularity silently.
	Recommend(ctx context.Context, ds *Dataset, req Request) ([]ScoredID, error)
}
