// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/metrics"
)

// InteractionStore implements interaction.Store over DuckDB.
type InteractionStore struct {
	db *DB
}

var _ interaction.Store = (*InteractionStore)(nil)

func (s *InteractionStore) Add(ctx context.Context, r interaction.Record) (interaction.Record, error) {
	if err := r.Validate(); err != nil {
		return interaction.Record{}, err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	err := s.db.conn.QueryRowContext(ctx,
		`INSERT INTO interactions (user_id, product_id, kind, rating, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		r.UserID, r.ProductID, string(r.Kind), r.Rating, r.CreatedAt,
	).Scan(&r.ID)
	metrics.RecordDBQuery("insert", "interactions", time.Since(start), err)
	if err != nil {
		return interaction.Record{}, fmt.Errorf("inserting interaction: %w", err)
	}
	return r, nil
}

func (s *InteractionStore) ListAll(ctx context.Context) ([]interaction.Record, error) {
	return s.query(ctx,
		`SELECT id, user_id, product_id, kind, rating, created_at
		 FROM interactions ORDER BY id`)
}

func (s *InteractionStore) ListByUser(ctx context.Context, userID int) ([]interaction.Record, error) {
	return s.query(ctx,
		`SELECT id, user_id, product_id, kind, rating, created_at
		 FROM interactions WHERE user_id = ? ORDER BY id`, userID)
}

func (s *InteractionStore) query(ctx context.Context, query string, args ...any) ([]interaction.Record, error) {
	start := time.Now()
	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "interactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	defer rows.Close()

	var out []interaction.Record
	for rows.Next() {
		var r interaction.Record
		var kind string
		if err := rows.Scan(&r.ID, &r.UserID, &r.ProductID, &kind, &r.Rating, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		r.Kind = interaction.Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
