// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/recommend"
)

// clusteringFixture has two clear price tiers: P1-P5 at 10, P6-P10 at 100.
func clusteringFixture(records []interaction.Record) *recommend.Dataset {
	var products []catalog.Product
	for id := 1; id <= 5; id++ {
		products = append(products, product(id, 1, 10, id))
	}
	for id := 6; id <= 10; id++ {
		products = append(products, product(id, 2, 100, id))
	}
	return recommend.NewDataset(products, nil, records)
}

func TestClusteringTooFewProducts(t *testing.T) {
	products := []catalog.Product{
		product(1, 1, 10, 1),
		product(2, 1, 20, 2),
	}
	ds := recommend.NewDataset(products, nil, nil)

	_, err := NewClustering().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 5})
	if !errors.Is(err, recommend.ErrInsufficientData) {
		t.Errorf("Recommend() error = %v, want ErrInsufficientData", err)
	}
}

func TestClusteringColdStartReportsInsufficientData(t *testing.T) {
	// Another user's history must not leak into a cold-start result; the
	// engine is expected to fall back to popularity instead.
	ds := clusteringFixture([]interaction.Record{
		purchase(2, 10), purchase(2, 10), purchase(2, 10),
	})

	_, err := NewClustering().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 3})
	if !errors.Is(err, recommend.ErrInsufficientData) {
		t.Errorf("Recommend() error = %v, want ErrInsufficientData", err)
	}
}

func TestClusteringPrefersUserPriceTier(t *testing.T) {
	ds := clusteringFixture([]interaction.Record{purchase(1, 6)})

	got, err := NewClustering().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 4})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("Recommend() returned %d results, want 4", len(got))
	}
	for _, s := range got {
		if s.ProductID == 6 {
			t.Error("recommended the purchased product")
		}
		p := ds.ProductByID[s.ProductID]
		if p.Price != 100 {
			t.Errorf("product %d price = %v, want the user's 100 tier", s.ProductID, p.Price)
		}
	}
}

func TestClusteringFillsFromOtherTiers(t *testing.T) {
	// The user owns the whole expensive tier except nothing is left:
	// the result must continue into the cheap tier.
	records := []interaction.Record{
		purchase(1, 6), purchase(1, 7), purchase(1, 8),
		purchase(1, 9), purchase(1, 10),
	}
	ds := clusteringFixture(records)

	got, err := NewClustering().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("Recommend() returned %d results, want 3", len(got))
	}
	for _, s := range got {
		if p := ds.ProductByID[s.ProductID]; p.Price != 10 {
			t.Errorf("product %d price = %v, want the remaining 10 tier", s.ProductID, p.Price)
		}
	}
}

func TestClusteringDeterministic(t *testing.T) {
	ds := clusteringFixture([]interaction.Record{view(1, 2), purchase(1, 7)})
	c := NewClustering()
	req := recommend.Request{UserID: 1, Limit: 10}

	first, err := c.Recommend(context.Background(), ds, req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := c.Recommend(context.Background(), ds, req)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !equalIDs(ids(first), ids(again)) {
			t.Fatalf("run %d: %v, want %v", i, ids(again), ids(first))
		}
	}
}

func TestClusteringNoDuplicates(t *testing.T) {
	ds := clusteringFixture([]interaction.Record{view(1, 3)})

	got, err := NewClustering().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	seen := make(map[int]bool)
	for _, s := range got {
		if seen[s.ProductID] {
			t.Errorf("duplicate product %d", s.ProductID)
		}
		seen[s.ProductID] = true
	}
}
