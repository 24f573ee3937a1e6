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

// DefaultPoolFactor sizes the diversity candidate pool as a multiple of
// the requested limit.
const DefaultPoolFactor = 2

// Clean is collaborative filtering hardened against noisy data.
//
// Three cleanups distinguish it from the plain collaborative strategy:
//
//   - Products whose raw interaction count exceeds mean+2 standard
//     deviations are treated as outliers (bot traffic, landing-page
//     defaults) and excluded from the similarity computation.
//   - Each user's weight vector is normalized by its own maximum, so
//     heavy users do not dominate the neighbourhood.
//   - Similarity is cosine over the products two users share, with the
//     full-vector norms in the denominator.
//
// The final ranking draws a pool of twice the limit and round-robins
// across categories so one category cannot fill the whole result.
type Clean struct {
	neighbours int
	poolFactor int
}

// NewClean creates the strategy with default settings.
func NewClean() *Clean {
	return &Clean{
		neighbours: DefaultNeighbours,
		poolFactor: DefaultPoolFactor,
	}
}

// Name returns the method string.
func (c *Clean) Name() string {
	return "clean"
}

// Recommend runs the cleaned CF pipeline and diversifies the result across
// categories.
func (c *Clean) Recommend(ctx context.Context, ds *recommend.Dataset, req recommend.Request) ([]recommend.ScoredID, error) {
	counts := interaction.ProductCounts(ds.Records)
	if len(counts) == 0 {
		return nil, recommend.ErrInsufficientData
	}

	threshold := outlierThreshold(counts)

	// Weight matrix over non-outlier products only.
	matrix := make(map[int]map[int]float64)
	for _, r := range ds.Records {
		if float64(counts[r.ProductID]) > threshold {
			continue
		}
		row, ok := matrix[r.UserID]
		if !ok {
			row = make(map[int]float64)
			matrix[r.UserID] = row
		}
		row[r.ProductID] += r.Weight()
	}

	// Per-user max normalization.
	for _, row := range matrix {
		var maxW float64
		for _, w := range row {
			if w > maxW {
				maxW = w
			}
		}
		if maxW == 0 {
			continue
		}
		for id := range row {
			row[id] /= maxW
		}
	}

	target, ok := matrix[req.UserID]
	if !ok || len(target) == 0 {
		return nil, recommend.ErrInsufficientData
	}

	sims := make(map[int]float64)
	for otherID, otherRow := range matrix {
		if otherID == req.UserID {
			continue
		}
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if sim := cosineShared(target, otherRow); sim > 0 {
			sims[otherID] = sim
		}
	}

	owned := ds.UserProducts(req.UserID)
	candidates := make(map[int]float64)
	for _, neighbour := range topSimilarUsers(sims, c.neighbours) {
		for productID, weight := range matrix[neighbour.userID] {
			if _, own := owned[productID]; own {
				continue
			}
			if _, available := ds.ProductByID[productID]; !available {
				continue
			}
			candidates[productID] += weight * neighbour.sim
		}
	}

	ranked := make([]recommend.ScoredID, 0, len(candidates))
	for id, score := range candidates {
		ranked = append(ranked, recommend.ScoredID{ProductID: id, Score: score})
	}
	sortScored(ranked)

	if req.Limit <= 0 {
		return ranked, nil
	}
	return c.diversify(ds, ranked, req.Limit), nil
}

// diversify takes a pool of poolFactor*limit top candidates and
// round-robins across their categories, then tops up from the remaining
// ranking.
func (c *Clean) diversify(ds *recommend.Dataset, ranked []recommend.ScoredID, limit int) []recommend.ScoredID {
	poolSize := limit * c.poolFactor
	pool := ranked
	if len(pool) > poolSize {
		pool = pool[:poolSize]
	}

	// Group the pool by category, keeping both the per-category score
	// order and the order categories first appear in.
	byCategory := make(map[int][]recommend.ScoredID)
	var catOrder []int
	for _, s := range pool {
		catID := ds.ProductByID[s.ProductID].CategoryID
		if _, seen := byCategory[catID]; !seen {
			catOrder = append(catOrder, catID)
		}
		byCategory[catID] = append(byCategory[catID], s)
	}

	result := make([]recommend.ScoredID, 0, limit)
	for len(result) < limit && len(catOrder) > 0 {
		var remaining []int
		for _, catID := range catOrder {
			bucket := byCategory[catID]
			if len(bucket) == 0 {
				continue
			}
			result = append(result, bucket[0])
			byCategory[catID] = bucket[1:]
			if len(byCategory[catID]) > 0 {
				remaining = append(remaining, catID)
			}
			if len(result) == limit {
				return result
			}
		}
		catOrder = remaining
	}

	// Pool exhausted: fill from the ranking past the pool.
	chosen := make(map[int]struct{}, len(result))
	for _, s := range result {
		chosen[s.ProductID] = struct{}{}
	}
	for _, s := range ranked {
		if len(result) >= limit {
			break
		}
		if _, ok := chosen[s.ProductID]; ok {
			continue
		}
		result = append(result, s)
	}
	return result
}

// outlierThreshold returns mean + 2 standard deviations of the raw
// per-product interaction counts.
func outlierThreshold(counts map[int]int) float64 {
	n := float64(len(counts))
	var sum float64
	for _, c := range counts {
		sum += float64(c)
	}
	mean := sum / n

	var variance float64
	for _, c := range counts {
		d := float64(c) - mean
		variance += d * d
	}
	return mean + 2*sqrt(variance/n)
}

// cosineShared computes cosine similarity using only the products both
// users share in the numerator, with full-vector norms in the denominator.
// Pairs with no shared products or a zero norm score zero.
func cosineShared(a, b map[int]float64) float64 {
	var dot float64
	shared := false
	for id, wa := range a {
		if wb, ok := b[id]; ok {
			dot += wa * wb
			shared = true
		}
	}
	if !shared {
		return 0
	}

	var normA, normB float64
	for _, w := range a {
		normA += w * w
	}
	for _, w := range b {
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (sqrt(normA) * sqrt(normB))
}
