// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package recommend implements the hybrid recommendation engine.
//
// The engine dispatches requests to pluggable strategies registered by
// name. Strategies compute over a consistent per-request snapshot of the
// catalog and interaction log. When a strategy reports insufficient data
// the engine silently falls back to the popularity baseline; an unknown
// method is a caller error.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/logging"
	"github.com/tomtom215/pralina/internal/metrics"
)

// DefaultMethod is the strategy selected by an empty method.
const DefaultMethod = "hybrid"

// FallbackMethod is the strategy the engine falls back to when the
// selected one reports insufficient data.
const FallbackMethod = "popularity"

// Engine routes recommendation requests to registered strategies.
type Engine struct {
	catalog      catalog.Store
	interactions interaction.Store
	logger       zerolog.Logger
	defaultLimit int

	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewEngine creates an engine over the given stores. Strategies are
// registered separately with Register. defaultLimit is the result count
// used when a request gives none; zero or negative selects DefaultLimit.
func NewEngine(cat catalog.Store, inter interaction.Store, defaultLimit int) *Engine {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Engine{
		catalog:      cat,
		interactions: inter,
		logger:       logging.WithComponent("recommend"),
		defaultLimit: defaultLimit,
		strategies:   make(map[string]Strategy),
	}
}

// Register adds a strategy under its Name. Registering the same name twice
// replaces the earlier strategy.
func (e *Engine) Register(s Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategies[s.Name()] = s
}

// Methods returns the registered strategy names, sorted.
func (e *Engine) Methods() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.strategies))
	for name := range e.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recommend runs the requested strategy and resolves its result against the
// catalog. The response preserves the strategy's score order.
func (e *Engine) Recommend(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	req = e.prepareRequest(req)
	resp := Response{
		UserID:      req.UserID,
		Method:      req.Method,
		Results:     []Recommendation{},
		GeneratedAt: start.UTC(),
	}

	// An explicit limit of zero is a valid request for nothing.
	if req.Limit == 0 {
		return resp, nil
	}

	strategy, err := e.lookup(req.Method)
	if err != nil {
		return Response{}, err
	}

	ds, err := e.loadDataset(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("loading dataset: %w", err)
	}

	scored, err := strategy.Recommend(ctx, ds, req)
	if errors.Is(err, ErrInsufficientData) {
		e.logger.Debug().
			Str("method", req.Method).
			Int("user_id", req.UserID).
			Msg("Insufficient data, falling back to popularity")

		fallback, lerr := e.lookup(FallbackMethod)
		if lerr != nil {
			return Response{}, lerr
		}
		scored, err = fallback.Recommend(ctx, ds, req)
		resp.FellBack = true
	}
	if err != nil {
		return Response{}, fmt.Errorf("strategy %s: %w", req.Method, err)
	}

	resp.Results = resolve(ds, scored, req.Limit)

	metrics.RecordRecommendation(req.Method, resp.FellBack, time.Since(start))
	e.logger.Debug().
		Str("method", req.Method).
		Int("user_id", req.UserID).
		Int("results", len(resp.Results)).
		Bool("fell_back", resp.FellBack).
		Dur("duration", time.Since(start)).
		Msg("Recommendation computed")

	return resp, nil
}

// prepareRequest applies defaults to the incoming request.
func (e *Engine) prepareRequest(req Request) Request {
	if req.Method == "" {
		req.Method = DefaultMethod
	}
	if req.Limit < 0 || (req.Limit == 0 && !req.LimitSet) {
		req.Limit = e.defaultLimit
	}
	return req
}

// lookup resolves a method name to its strategy.
func (e *Engine) lookup(method string) (Strategy, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.strategies[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, method)
	}
	return s, nil
}

// loadDataset snapshots the catalog and interaction log for one request.
func (e *Engine) loadDataset(ctx context.Context) (*Dataset, error) {
	products, err := e.catalog.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	categories, err := e.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	records, err := e.interactions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	return NewDataset(products, categories, records), nil
}

// resolve maps scored IDs to catalog products, dropping IDs that are no
// longer in the dataset and truncating to limit. Order is preserved.
func resolve(ds *Dataset, scored []ScoredID, limit int) []Recommendation {
	out := make([]Recommendation, 0, limit)
	seen := make(map[int]struct{}, limit)
	for _, s := range scored {
		if len(out) >= limit {
			break
		}
		if _, dup := seen[s.ProductID]; dup {
			continue
		}
		p, ok := ds.ProductByID[s.ProductID]
		if !ok {
			continue
		}
		seen[s.ProductID] = struct{}{}
		out = append(out, Recommendation{Product: p, Score: s.Score})
	}
	return out
}
