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

func TestCleanRecommendBasic(t *testing.T) {
	products := []catalog.Product{
		product(1, 1, 10, 1),
		product(2, 1, 12, 2),
		product(3, 2, 14, 3),
		product(4, 2, 16, 4),
	}
	records := []interaction.Record{
		view(1, 1), view(1, 2),
		view(2, 1), view(2, 2), purchase(2, 3),
	}
	ds := recommend.NewDataset(products, nil, records)

	got, err := NewClean().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) == 0 || got[0].ProductID != 3 {
		t.Errorf("Recommend() = %v, want P3 first", ids(got))
	}
}

func TestCleanExcludesOutlierProducts(t *testing.T) {
	var products []catalog.Product
	for id := 1; id <= 11; id++ {
		products = append(products, product(id, 1, 10, id))
	}

	// P1 is hammered by forty drive-by users (landing page noise); the
	// rest of the catalog sees two views each. That puts P1 well past
	// mean+2 stddev, so it must not drive recommendations.
	var records []interaction.Record
	for u := 100; u < 140; u++ {
		records = append(records, view(u, 1))
	}
	for id := 4; id <= 11; id++ {
		records = append(records, view(200+id, id), view(300+id, id))
	}
	// U1 and U2 agree on P2; U2 also likes P3.
	records = append(records,
		view(1, 2),
		view(2, 2), purchase(2, 3),
	)
	ds := recommend.NewDataset(products, nil, records)

	got, err := NewClean().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, s := range got {
		if s.ProductID == 1 {
			t.Error("outlier product recommended")
		}
	}
	if len(got) == 0 || got[0].ProductID != 3 {
		t.Errorf("Recommend() = %v, want P3 first", ids(got))
	}
}

func TestCleanCategoryDiversity(t *testing.T) {
	// Five candidates across two categories; without diversification the
	// three top-scored category 1 products would fill a limit of 4
	// before category 2 appears.
	products := []catalog.Product{
		product(1, 1, 10, 1),
		product(2, 1, 11, 2),
		product(3, 1, 12, 3),
		product(4, 2, 13, 4),
		product(5, 2, 14, 5),
		product(6, 1, 15, 6),
	}
	records := []interaction.Record{
		view(1, 6),
		view(2, 6),
		purchase(2, 1), purchase(2, 2), purchase(2, 3),
		{UserID: 2, ProductID: 4, Kind: interaction.KindCart},
		view(2, 5),
		// A third user flattens the count distribution so nothing
		// trips the outlier filter.
		view(3, 1), view(3, 2), view(3, 3), view(3, 4), view(3, 5),
	}
	ds := recommend.NewDataset(products, nil, records)

	got, err := NewClean().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 4})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !equalIDs(ids(got), []int{1, 4, 2, 5}) {
		t.Errorf("Recommend() = %v, want round-robin [1 4 2 5]", ids(got))
	}
}

func TestCleanInsufficientData(t *testing.T) {
	products := []catalog.Product{product(1, 1, 10, 1)}

	tests := []struct {
		name    string
		records []interaction.Record
		userID  int
	}{
		{name: "empty log", records: nil, userID: 1},
		{name: "no history for user", records: []interaction.Record{view(2, 1)}, userID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := recommend.NewDataset(products, nil, tt.records)
			_, err := NewClean().Recommend(context.Background(), ds, recommend.Request{UserID: tt.userID, Limit: 5})
			if !errors.Is(err, recommend.ErrInsufficientData) {
				t.Errorf("Recommend() error = %v, want ErrInsufficientData", err)
			}
		})
	}
}
