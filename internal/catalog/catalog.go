// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package catalog defines the product catalog model and storage interfaces.
//
// A Product belongs to exactly one Category and carries the free-text
// attributes (ingredients, flavor profile, occasion) that the content-based
// recommender tokenizes. Storage is abstracted behind the Store interface
// with an in-memory implementation for tests and a DuckDB implementation in
// internal/database for production.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a product or category does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Category groups products for browsing and recommendation diversity.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a single sellable item in the catalog.
type Product struct {
	ID            int       `json:"id"`
	CategoryID    int       `json:"category_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"image_url,omitempty"`
	Ingredients   string    `json:"ingredients,omitempty"`
	FlavorProfile string    `json:"flavor_profile,omitempty"`
	Occasion      string    `json:"occasion,omitempty"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
}

// FeatureText combines the product's descriptive attributes with its
// category name into a single lowercase string for token matching.
func (p Product) FeatureText(categoryName string) string {
	return strings.ToLower(strings.Join([]string{
		p.Ingredients,
		p.FlavorProfile,
		p.Occasion,
		categoryName,
	}, " "))
}

// FeatureTokens splits FeatureText into whitespace-delimited tokens.
// Empty attributes yield no tokens.
func (p Product) FeatureTokens(categoryName string) []string {
	return strings.Fields(p.FeatureText(categoryName))
}

// Store is the read/write interface over the product catalog.
type Store interface {
	// AddCategory inserts a category and returns it with its assigned ID.
	AddCategory(ctx context.Context, c Category) (Category, error)

	// AddProduct inserts a product and returns it with its assigned ID.
	AddProduct(ctx context.Context, p Product) (Product, error)

	// ProductByID returns a product by ID, available or not.
	ProductByID(ctx context.Context, id int) (Product, error)

	// ProductBySlug returns a product by slug, available or not.
	ProductBySlug(ctx context.Context, slug string) (Product, error)

	// ListAvailable returns all available products ordered by ID ascending.
	ListAvailable(ctx context.Context) ([]Product, error)

	// ListByCategory returns available products in the category with the
	// given slug, ordered by ID ascending.
	ListByCategory(ctx context.Context, categorySlug string) ([]Product, error)

	// ListRecent returns up to limit available products ordered by
	// CreatedAt descending, ID descending as tiebreak.
	ListRecent(ctx context.Context, limit int) ([]Product, error)

	// Categories returns all categories ordered by ID ascending.
	Categories(ctx context.Context) ([]Category, error)

	// CategoryByID returns a category by ID.
	CategoryByID(ctx context.Context, id int) (Category, error)
}
