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

func TestHybridSharedPurchasesSurfaceTheMissingProduct(t *testing.T) {
	// User 1 bought products 1 and 2; user 2 bought 1, 2 and 3. Their
	// Jaccard similarity is 2/3, so product 3 arrives with score
	// 5 * 2/3 and must be the single result.
	products := []catalog.Product{
		product(1, 1, 10, 1),
		product(2, 1, 12, 2),
		product(3, 1, 14, 3),
	}
	records := []interaction.Record{
		purchase(1, 1), purchase(1, 2),
		purchase(2, 1), purchase(2, 2), purchase(2, 3),
	}
	ds := recommend.NewDataset(products, nil, records)

	got, err := NewHybrid().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !equalIDs(ids(got), []int{3}) {
		t.Errorf("Recommend() = %v, want [3]", ids(got))
	}
}

func TestHybridWithoutProductMatchesCollaborative(t *testing.T) {
	products := []catalog.Product{
		product(1, 1, 10, 1),
		product(2, 1, 12, 2),
		product(3, 2, 14, 3),
		product(4, 2, 16, 4),
	}
	records := []interaction.Record{
		view(1, 1), view(1, 2),
		purchase(2, 1), purchase(2, 3),
		rating(3, 4, 5),
	}
	ds := recommend.NewDataset(products, nil, records)
	req := recommend.Request{UserID: 1, Limit: 3}

	hybrid, err := NewHybrid().Recommend(context.Background(), ds, req)
	if err != nil {
		t.Fatalf("hybrid Recommend() error = %v", err)
	}
	collab, err := NewCollaborative().Recommend(context.Background(), ds, req)
	if err != nil {
		t.Fatalf("collaborative Recommend() error = %v", err)
	}
	if !equalIDs(ids(hybrid), ids(collab)) {
		t.Errorf("hybrid = %v, collaborative = %v, want identical", ids(hybrid), ids(collab))
	}
}

// hybridBlendFixture: users 1 and 2 share the identical history {1, 2}, so
// collaborative finds no new candidate and pads with the only remaining
// product 3. Content-based around product 1 can then append product 2.
func hybridBlendFixture() *recommend.Dataset {
	categories := []catalog.Category{{ID: 1, Name: "Truffles"}}
	products := []catalog.Product{
		product(1, 1, 10, 1),
		product(2, 1, 12, 2),
		product(3, 1, 14, 3),
	}
	products[0].Ingredients = "dark chocolate hazelnut"
	products[1].Ingredients = "dark chocolate espresso"
	products[2].Ingredients = "vanilla nougat"

	records := []interaction.Record{
		view(1, 1), view(1, 2),
		view(2, 1), view(2, 2),
	}
	return recommend.NewDataset(products, categories, records)
}

func TestHybridAppendsContentRecommendations(t *testing.T) {
	ds := hybridBlendFixture()

	got, err := NewHybrid().Recommend(context.Background(), ds,
		recommend.Request{UserID: 1, ProductID: 1, Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// Collaborative contributes [3] (padding), content appends 2.
	if !equalIDs(ids(got), []int{3, 2}) {
		t.Errorf("Recommend() = %v, want [3 2]", ids(got))
	}
}

func TestHybridTruncatesMergedResults(t *testing.T) {
	ds := hybridBlendFixture()

	got, err := NewHybrid().Recommend(context.Background(), ds,
		recommend.Request{UserID: 1, ProductID: 1, Limit: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !equalIDs(ids(got), []int{3}) {
		t.Errorf("Recommend() = %v, want [3]", ids(got))
	}
}

func TestHybridUnknownReferenceProductIsIgnored(t *testing.T) {
	ds := hybridBlendFixture()

	got, err := NewHybrid().Recommend(context.Background(), ds,
		recommend.Request{UserID: 1, ProductID: 999, Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !equalIDs(ids(got), []int{3}) {
		t.Errorf("Recommend() = %v, want the collaborative [3]", ids(got))
	}
}

func TestHybridColdStartReportsInsufficientData(t *testing.T) {
	ds := hybridBlendFixture()

	_, err := NewHybrid().Recommend(context.Background(), ds,
		recommend.Request{UserID: 9, Limit: 3})
	if !errors.Is(err, recommend.ErrInsufficientData) {
		t.Errorf("Recommend() error = %v, want ErrInsufficientData", err)
	}
}
