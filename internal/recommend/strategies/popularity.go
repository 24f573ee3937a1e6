// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"context"
	"sort"

	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/recommend"
)

// Popularity ranks products by total interaction weight and pads with the
// most recently created products. It is the engine's fallback baseline, so
// unlike the personalized strategies it does not exclude products from the
// requesting user's own history.
type Popularity struct{}

// NewPopularity creates the popularity strategy.
func NewPopularity() *Popularity {
	return &Popularity{}
}

// Name returns the method string.
func (p *Popularity) Name() string {
	return "popularity"
}

// Recommend returns the top products by weighted interaction count. With an
// empty interaction log the result is the newest products first.
func (p *Popularity) Recommend(_ context.Context, ds *recommend.Dataset, req recommend.Request) ([]recommend.ScoredID, error) {
	return popularityOrder(ds, req.Limit, nil), nil
}

// popularityOrder returns up to limit products ranked by weighted
// interaction total descending (ID ascending on ties), skipping excluded
// IDs, then padded with the newest remaining products at score zero.
// A negative limit means no cap.
//
// Shared by the personalized strategies for their padding step.
func popularityOrder(ds *recommend.Dataset, limit int, exclude map[int]struct{}) []recommend.ScoredID {
	if limit == 0 {
		return []recommend.ScoredID{}
	}

	weights := interaction.ProductWeights(ds.Records)

	scored := make([]recommend.ScoredID, 0, len(weights))
	for id, w := range weights {
		if _, skip := exclude[id]; skip {
			continue
		}
		if _, ok := ds.ProductByID[id]; !ok {
			continue
		}
		scored = append(scored, recommend.ScoredID{ProductID: id, Score: w})
	}
	sortScored(scored)

	if limit > 0 && len(scored) > limit {
		return scored[:limit]
	}

	// Pad with the most recently created products not already ranked.
	chosen := make(map[int]struct{}, len(scored))
	for _, s := range scored {
		chosen[s.ProductID] = struct{}{}
	}

	recent := make([]int, 0, len(ds.Products))
	for _, p := range ds.Products {
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		if _, ok := chosen[p.ID]; ok {
			continue
		}
		recent = append(recent, p.ID)
	}
	sort.Slice(recent, func(i, j int) bool {
		pi, pj := ds.ProductByID[recent[i]], ds.ProductByID[recent[j]]
		if pi.CreatedAt.Equal(pj.CreatedAt) {
			return pi.ID > pj.ID
		}
		return pi.CreatedAt.After(pj.CreatedAt)
	})

	for _, id := range recent {
		if limit > 0 && len(scored) >= limit {
			break
		}
		scored = append(scored, recommend.ScoredID{ProductID: id})
	}
	return scored
}
