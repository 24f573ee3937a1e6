// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"context"
	"errors"

	"github.com/tomtom215/pralina/internal/recommend"
)

// Hybrid is the default strategy: collaborative filtering, optionally
// blended with content-based results when the request carries a reference
// product. Content recommendations not already present are appended after
// the collaborative ones, so collaborative order always wins.
type Hybrid struct {
	collaborative *Collaborative
	content       *ContentBased
}

// NewHybrid creates the hybrid strategy over fresh collaborative and
// content-based instances.
func NewHybrid() *Hybrid {
	return &Hybrid{
		collaborative: NewCollaborative(),
		content:       NewContentBased(),
	}
}

// Name returns the method string.
func (h *Hybrid) Name() string {
	return "hybrid"
}

// Recommend runs collaborative filtering and, when a reference product was
// supplied, appends content-based results not already present, truncated
// to the limit. Without a reference product it reduces to pure
// collaborative filtering. A user with no history reports insufficient
// data, same as collaborative on its own.
func (h *Hybrid) Recommend(ctx context.Context, ds *recommend.Dataset, req recommend.Request) ([]recommend.ScoredID, error) {
	scored, err := h.collaborative.Recommend(ctx, ds, req)
	if err != nil {
		return nil, err
	}
	if req.ProductID == 0 {
		return scored, nil
	}

	contentScored, err := h.content.Recommend(ctx, ds, req)
	if errors.Is(err, recommend.ErrInsufficientData) {
		// Reference product not in the dataset; nothing to blend.
		return scored, nil
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(scored))
	for _, s := range scored {
		seen[s.ProductID] = struct{}{}
	}
	for _, s := range contentScored {
		if req.Limit > 0 && len(scored) >= req.Limit {
			break
		}
		if _, dup := seen[s.ProductID]; dup {
			continue
		}
		seen[s.ProductID] = struct{}{}
		scored = append(scored, s)
	}
	return scored, nil
}
