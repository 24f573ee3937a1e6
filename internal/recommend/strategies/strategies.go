// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package strategies implements the recommendation strategies dispatched by
// the engine.
//
// # Strategies
//
//   - Collaborative: user-based CF over Jaccard set similarity
//   - ContentBased: token overlap on product attributes
//   - Clustering: k-means price segmentation
//   - Clean: noise-filtered CF with category diversification
//   - Popularity: weighted interaction baseline and fallback
//   - Hybrid: collaborative blended with content-based, the default
//
// # Determinism
//
// Every strategy is deterministic. Sorts break score ties by product or
// user ID, and the k-means seed is fixed, so identical data always yields
// identical output.
package strategies

import (
	"context"
	"sort"

	"github.com/tomtom215/pralina/internal/recommend"
)

// Default returns one instance of every strategy with default settings.
// The caller registers them with the engine.
func Default() []recommend.Strategy {
	return []recommend.Strategy{
		NewPopularity(),
		NewCollaborative(),
		NewContentBased(),
		NewClustering(),
		NewClean(),
		NewHybrid(),
	}
}

// Ensure all strategies implement the interface.
var (
	_ recommend.Strategy = (*Popularity)(nil)
	_ recommend.Strategy = (*Collaborative)(nil)
	_ recommend.Strategy = (*ContentBased)(nil)
	_ recommend.Strategy = (*Clustering)(nil)
	_ recommend.Strategy = (*Clean)(nil)
	_ recommend.Strategy = (*Hybrid)(nil)
)

// contextCancelled checks if the context has been canceled.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// sqrt returns the square root using Newton's method.
// This avoids importing math for a simple operation.
func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}

	z := x
	for i := 0; i < 10; i++ {
		z = (z + x/z) / 2
	}
	return z
}

// jaccardIDs computes Jaccard similarity between two product ID sets.
func jaccardIDs(a, b map[int]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// jaccardTokens computes Jaccard similarity between two token slices.
func jaccardTokens(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// userSim pairs a user with a similarity score.
type userSim struct {
	userID int
	sim    float64
}

// topSimilarUsers returns the k most similar users, descending similarity
// with user ID as tiebreak.
func topSimilarUsers(sims map[int]float64, k int) []userSim {
	out := make([]userSim, 0, len(sims))
	for id, s := range sims {
		out = append(out, userSim{userID: id, sim: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].sim == out[j].sim {
			return out[i].userID < out[j].userID
		}
		return out[i].sim > out[j].sim
	})
	if k < len(out) {
		out = out[:k]
	}
	return out
}

// sortScored orders scored IDs by score descending, product ID ascending.
func sortScored(scored []recommend.ScoredID) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score == scored[j].Score {
			return scored[i].ProductID < scored[j].ProductID
		}
		return scored[i].Score > scored[j].Score
	})
}

// hasHistory reports whether the user appears in the interaction log.
func hasHistory(ds *recommend.Dataset, userID int) bool {
	for _, r := range ds.Records {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// keySet returns the key set of a weight row.
func keySet(row map[int]float64) map[int]struct{} {
	set := make(map[int]struct{}, len(row))
	for id := range row {
		set[id] = struct{}{}
	}
	return set
}
