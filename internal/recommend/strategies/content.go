// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"context"

	"github.com/tomtom215/pralina/internal/recommend"
)

// ContentBased recommends products whose descriptive text overlaps the seed
// product's. The feature text is the lowercase concatenation of
// ingredients, flavor profile, occasion and category name; similarity is
// the Jaccard index over its whitespace tokens.
type ContentBased struct{}

// NewContentBased creates the content-based strategy.
func NewContentBased() *ContentBased {
	return &ContentBased{}
}

// Name returns the method string.
func (c *ContentBased) Name() string {
	return "content"
}

// Recommend ranks every other available product by token overlap with the
// seed product. Without a usable seed it reports insufficient data so the
// engine falls back to popularity. Products with no overlap still rank,
// at score zero, which keeps short catalogs filled up to the limit.
func (c *ContentBased) Recommend(ctx context.Context, ds *recommend.Dataset, req recommend.Request) ([]recommend.ScoredID, error) {
	if req.ProductID == 0 {
		return nil, recommend.ErrInsufficientData
	}
	seed, ok := ds.ProductByID[req.ProductID]
	if !ok {
		return nil, recommend.ErrInsufficientData
	}

	seedTokens := seed.FeatureTokens(ds.CategoryName(seed.CategoryID))

	scored := make([]recommend.ScoredID, 0, len(ds.Products)-1)
	for _, p := range ds.Products {
		if p.ID == seed.ID {
			continue
		}
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}
		sim := jaccardTokens(seedTokens, p.FeatureTokens(ds.CategoryName(p.CategoryID)))
		scored = append(scored, recommend.ScoredID{ProductID: p.ID, Score: sim})
	}
	sortScored(scored)

	if req.Limit > 0 && len(scored) > req.Limit {
		scored = scored[:req.Limit]
	}
	return scored, nil
}
