// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package database provides the DuckDB-backed implementations of the
// catalog and interaction stores.
//
// DuckDB runs embedded, so a single file (or ":memory:") holds the whole
// storefront. The analytic column store suits the recommendation workload,
// which scans the full interaction log per request.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/pralina/internal/config"
	"github.com/tomtom215/pralina/internal/logging"
)

// DB wraps the DuckDB connection and hands out the typed stores.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		if dbDir := filepath.Dir(cfg.Path); dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Msg("Database initialized")

	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Catalog returns the catalog store over this database.
func (db *DB) Catalog() *CatalogStore {
	return &CatalogStore{db: db}
}

// Interactions returns the interaction store over this database.
func (db *DB) Interactions() *InteractionStore {
	return &InteractionStore{db: db}
}

// migrate creates the schema. Statements are idempotent so startup is safe
// against an existing database file.
func (db *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_category_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_product_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_interaction_id START 1`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_category_id'),
			name VARCHAR NOT NULL,
			slug VARCHAR NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_product_id'),
			category_id INTEGER NOT NULL,
			name VARCHAR NOT NULL,
			slug VARCHAR NOT NULL UNIQUE,
			description VARCHAR NOT NULL DEFAULT '',
			price DOUBLE NOT NULL,
			image_url VARCHAR NOT NULL DEFAULT '',
			ingredients VARCHAR NOT NULL DEFAULT '',
			flavor_profile VARCHAR NOT NULL DEFAULT '',
			occasion VARCHAR NOT NULL DEFAULT '',
			available BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_interaction_id'),
			user_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			kind VARCHAR NOT NULL,
			rating INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_product ON interactions (product_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}
	return nil
}
