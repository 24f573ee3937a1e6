// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"context"
	"testing"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/recommend"
)

func TestPopularityRecommend(t *testing.T) {
	products := []catalog.Product{
		product(1, 1, 10, 1),
		product(2, 1, 12, 2),
		product(3, 1, 14, 3),
		product(4, 1, 16, 4),
	}

	tests := []struct {
		name    string
		records []interaction.Record
		limit   int
		want    []int
	}{
		{
			name: "weighted order",
			// P2: purchase (5), P1: view+cart (4), P3: view (1).
			records: []interaction.Record{
				purchase(1, 2),
				view(2, 1),
				{UserID: 2, ProductID: 1, Kind: interaction.KindCart},
				view(3, 3),
			},
			limit: 3,
			want:  []int{2, 1, 3},
		},
		{
			name:    "empty log yields newest first",
			records: nil,
			limit:   3,
			want:    []int{4, 3, 2},
		},
		{
			name: "padding follows ranked products",
			records: []interaction.Record{
				view(1, 1),
			},
			limit: 3,
			want:  []int{1, 4, 3},
		},
		{
			name: "rating weight is twice the stars",
			// P3: rating 3 -> 6, P2: purchase -> 5.
			records: []interaction.Record{
				rating(1, 3, 3),
				purchase(2, 2),
			},
			limit: 2,
			want:  []int{3, 2},
		},
	}

	p := NewPopularity()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := recommend.NewDataset(products, nil, tt.records)
			got, err := p.Recommend(context.Background(), ds, recommend.Request{UserID: 99, Limit: tt.limit})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Recommend() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestPopularityIgnoresUnknownProducts(t *testing.T) {
	products := []catalog.Product{product(1, 1, 10, 1)}
	// Product 77 is not in the catalog snapshot (e.g. made unavailable).
	records := []interaction.Record{purchase(1, 77), view(2, 1)}

	ds := recommend.NewDataset(products, nil, records)
	got, err := NewPopularity().Recommend(context.Background(), ds, recommend.Request{UserID: 1, Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !equalIDs(ids(got), []int{1}) {
		t.Errorf("Recommend() = %v, want [1]", ids(got))
	}
}
