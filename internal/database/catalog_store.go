// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/metrics"
)

// CatalogStore implements catalog.Store over DuckDB.
type CatalogStore struct {
	db *DB
}

var _ catalog.Store = (*CatalogStore)(nil)

const productColumns = `id, category_id, name, slug, description, price,
	image_url, ingredients, flavor_profile, occasion, available, created_at`

func (s *CatalogStore) AddCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	start := time.Now()
	err := s.db.conn.QueryRowContext(ctx,
		`INSERT INTO categories (name, slug) VALUES (?, ?) RETURNING id`,
		c.Name, c.Slug,
	).Scan(&c.ID)
	metrics.RecordDBQuery("insert", "categories", time.Since(start), err)
	if err != nil {
		return catalog.Category{}, fmt.Errorf("inserting category: %w", err)
	}
	return c, nil
}

func (s *CatalogStore) AddProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	err := s.db.conn.QueryRowContext(ctx,
		`INSERT INTO products (category_id, name, slug, description, price,
			image_url, ingredients, flavor_profile, occasion, available, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		p.CategoryID, p.Name, p.Slug, p.Description, p.Price,
		p.ImageURL, p.Ingredients, p.FlavorProfile, p.Occasion, p.Available, p.CreatedAt,
	).Scan(&p.ID)
	metrics.RecordDBQuery("insert", "products", time.Since(start), err)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("inserting product: %w", err)
	}
	return p, nil
}

func (s *CatalogStore) ProductByID(ctx context.Context, id int) (catalog.Product, error) {
	return s.queryProduct(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

func (s *CatalogStore) ProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	return s.queryProduct(ctx, `SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)
}

func (s *CatalogStore) ListAvailable(ctx context.Context) ([]catalog.Product, error) {
	return s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE available ORDER BY id`)
}

func (s *CatalogStore) ListByCategory(ctx context.Context, categorySlug string) ([]catalog.Product, error) {
	// Resolve the category first so an unknown slug is a not-found
	// rather than an empty listing.
	var catID int
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE slug = ?`, categorySlug,
	).Scan(&catID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving category %q: %w", categorySlug, err)
	}

	return s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE available AND category_id = ? ORDER BY id`,
		catID)
}

func (s *CatalogStore) ListRecent(ctx context.Context, limit int) ([]catalog.Product, error) {
	return s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE available
		 ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

func (s *CatalogStore) Categories(ctx context.Context) ([]catalog.Category, error) {
	start := time.Now()
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, name, slug FROM categories ORDER BY id`)
	metrics.RecordDBQuery("select", "categories", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *CatalogStore) CategoryByID(ctx context.Context, id int) (catalog.Category, error) {
	var c catalog.Category
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, name, slug FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Category{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Category{}, fmt.Errorf("selecting category %d: %w", id, err)
	}
	return c, nil
}

func (s *CatalogStore) queryProduct(ctx context.Context, query string, arg any) (catalog.Product, error) {
	start := time.Now()
	row := s.db.conn.QueryRowContext(ctx, query, arg)
	p, err := scanProduct(row.Scan)
	metrics.RecordDBQuery("select", "products", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("selecting product: %w", err)
	}
	return p, nil
}

func (s *CatalogStore) queryProducts(ctx context.Context, query string, args ...any) ([]catalog.Product, error) {
	start := time.Now()
	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "products", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// scanProduct reads one product row through any Scan-shaped function.
func scanProduct(scan func(dest ...any) error) (catalog.Product, error) {
	var p catalog.Product
	err := scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.ImageURL, &p.Ingredients, &p.FlavorProfile, &p.Occasion, &p.Available, &p.CreatedAt)
	return p, err
}
