// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"context"

	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/recommend"
)

// DefaultNeighbours is the neighbourhood size for the user-based
// collaborative strategies.
const DefaultNeighbours = 10

// Collaborative is user-based collaborative filtering.
//
// User similarity is the Jaccard index over the sets of product IDs each
// user has interacted with, which keeps the neighbourhood robust against
// differing interaction intensities. Candidate products are accumulated
// from the top neighbours, weighted by interaction weight times neighbour
// similarity.
type Collaborative struct {
	neighbours int
}

// NewCollaborative creates the strategy with the default neighbourhood.
func NewCollaborative() *Collaborative {
	return &Collaborative{neighbours: DefaultNeighbours}
}

// Name returns the method string.
func (c *Collaborative) Name() string {
	return "collaborative"
}

// Recommend scores products interacted with by similar users but not by the
// requesting user. A user with no history reports insufficient data; a
// sparse result is padded from the popularity order.
func (c *Collaborative) Recommend(ctx context.Context, ds *recommend.Dataset, req recommend.Request) ([]recommend.ScoredID, error) {
	matrix := interaction.Matrix(ds.Records)

	userRow, ok := matrix[req.UserID]
	if !ok || len(userRow) == 0 {
		return nil, recommend.ErrInsufficientData
	}
	userSet := keySet(userRow)

	sims := make(map[int]float64)
	for otherID, otherRow := range matrix {
		if otherID == req.UserID {
			continue
		}
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if sim := jaccardIDs(userSet, keySet(otherRow)); sim > 0 {
			sims[otherID] = sim
		}
	}

	candidates := make(map[int]float64)
	for _, neighbour := range topSimilarUsers(sims, c.neighbours) {
		for productID, weight := range matrix[neighbour.userID] {
			if _, owned := userSet[productID]; owned {
				continue
			}
			if _, available := ds.ProductByID[productID]; !available {
				continue
			}
			candidates[productID] += weight * neighbour.sim
		}
	}

	scored := make([]recommend.ScoredID, 0, len(candidates))
	for id, score := range candidates {
		scored = append(scored, recommend.ScoredID{ProductID: id, Score: score})
	}
	sortScored(scored)
	if req.Limit > 0 && len(scored) > req.Limit {
		scored = scored[:req.Limit]
	}

	// Pad from the popularity order, never re-suggesting the user's own
	// products or the candidates already chosen.
	if req.Limit > 0 && len(scored) < req.Limit {
		exclude := make(map[int]struct{}, len(userSet)+len(scored))
		for id := range userSet {
			exclude[id] = struct{}{}
		}
		for _, s := range scored {
			exclude[s.ProductID] = struct{}{}
		}
		for _, pad := range popularityOrder(ds, req.Limit-len(scored), exclude) {
			scored = append(scored, pad)
		}
	}

	return scored, nil
}
