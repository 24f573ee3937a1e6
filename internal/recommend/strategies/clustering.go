// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"context"
	"math/rand"

	"github.com/tomtom215/pralina/internal/recommend"
)

// Clustering defaults.
const (
	// DefaultMaxClusters caps k for the price segmentation.
	DefaultMaxClusters = 5

	// DefaultMinProducts is the catalog size below which clustering
	// reports insufficient data.
	DefaultMinProducts = 10

	// DefaultKMeansSeed fixes the centroid initialization for
	// reproducible cluster assignments.
	DefaultKMeansSeed = 42

	// DefaultKMeansMaxIter bounds the Lloyd iterations.
	DefaultKMeansMaxIter = 100
)

// Clustering segments the catalog by price with k-means and recommends
// uninteracted products from the cluster the user has spent the most
// weighted interaction mass in.
//
// Prices are standardized to zero mean and unit variance before
// clustering; k is min(DefaultMaxClusters, n/2).
type Clustering struct {
	maxClusters int
	minProducts int
	seed        int64
	maxIter     int
}

// NewClustering creates the strategy with default settings.
func NewClustering() *Clustering {
	return &Clustering{
		maxClusters: DefaultMaxClusters,
		minProducts: DefaultMinProducts,
		seed:        DefaultKMeansSeed,
		maxIter:     DefaultKMeansMaxIter,
	}
}

// Name returns the method string.
func (c *Clustering) Name() string {
	return "clustering"
}

// Recommend clusters the catalog and fills the result from the user's
// preferred cluster first, then the remaining clusters in index order.
// A user with no history reports insufficient data; a user whose history
// maps to no cluster gets cluster 0. Products the user already interacted
// with are never returned.
func (c *Clustering) Recommend(ctx context.Context, ds *recommend.Dataset, req recommend.Request) ([]recommend.ScoredID, error) {
	n := len(ds.Products)
	if n < c.minProducts {
		return nil, recommend.ErrInsufficientData
	}
	if !hasHistory(ds, req.UserID) {
		return nil, recommend.ErrInsufficientData
	}
	if contextCancelled(ctx) {
		return nil, ctx.Err()
	}

	k := c.maxClusters
	if n/2 < k {
		k = n / 2
	}

	prices := make([]float64, n)
	for i, p := range ds.Products {
		prices[i] = p.Price
	}
	assign := kmeans(standardize(prices), k, c.seed, c.maxIter)

	// Cluster index per product ID, in catalog order.
	clusterOf := make(map[int]int, n)
	for i, p := range ds.Products {
		clusterOf[p.ID] = assign[i]
	}

	// Preferred cluster: the one holding the most of the user's weighted
	// interaction mass. Ties, and a history that maps to no cluster,
	// resolve to cluster 0.
	mass := make([]float64, k)
	for _, r := range ds.Records {
		if r.UserID != req.UserID {
			continue
		}
		if cl, ok := clusterOf[r.ProductID]; ok {
			mass[cl] += r.Weight()
		}
	}
	preferred := 0
	for cl := 1; cl < k; cl++ {
		if mass[cl] > mass[preferred] {
			preferred = cl
		}
	}

	owned := ds.UserProducts(req.UserID)

	var scored []recommend.ScoredID
	appendCluster := func(cluster int, score float64) {
		for _, p := range ds.Products {
			if req.Limit > 0 && len(scored) >= req.Limit {
				return
			}
			if clusterOf[p.ID] != cluster {
				continue
			}
			if _, ok := owned[p.ID]; ok {
				continue
			}
			scored = append(scored, recommend.ScoredID{ProductID: p.ID, Score: score})
		}
	}

	appendCluster(preferred, 1)
	for cl := 0; cl < k; cl++ {
		if cl != preferred {
			appendCluster(cl, 0)
		}
	}
	return scored, nil
}

// standardize maps values to (x-mean)/stddev. A zero standard deviation
// yields all zeros.
func standardize(values []float64) []float64 {
	n := float64(len(values))
	if n == 0 {
		return values
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	std := sqrt(variance / n)

	out := make([]float64, len(values))
	if std == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}

// kmeans runs one-dimensional Lloyd's algorithm with seeded centroid
// initialization. Returns the cluster index per value.
func kmeans(values []float64, k int, seed int64, maxIter int) []int {
	n := len(values)
	assign := make([]int, n)
	if k <= 1 || n == 0 {
		return assign
	}
	if k > n {
		k = n
	}

	// Initial centroids: k values picked at shuffled positions.
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	centroids := make([]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = values[perm[i]]
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range values {
			best := 0
			bestDist := dist1(v, centroids[0])
			for c := 1; c < k; c++ {
				if d := dist1(v, centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[assign[i]] += v
			counts[assign[i]]++
		}
		for c := 0; c < k; c++ {
			// An empty cluster keeps its centroid.
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}
	}
	return assign
}

// dist1 is squared distance in one dimension.
func dist1(a, b float64) float64 {
	d := a - b
	return d * d
}
