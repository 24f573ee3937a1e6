// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package strategies

import (
	"time"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/recommend"
)

var fixtureEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// product builds an available product created `age` days after the fixture
// epoch, so higher age means more recent.
func product(id, categoryID int, price float64, age int) catalog.Product {
	return catalog.Product{
		ID:         id,
		CategoryID: categoryID,
		Name:       "product",
		Price:      price,
		Available:  true,
		CreatedAt:  fixtureEpoch.AddDate(0, 0, age),
	}
}

func view(userID, productID int) interaction.Record {
	return interaction.Record{UserID: userID, ProductID: productID, Kind: interaction.KindView}
}

func purchase(userID, productID int) interaction.Record {
	return interaction.Record{UserID: userID, ProductID: productID, Kind: interaction.KindPurchase}
}

func rating(userID, productID, stars int) interaction.Record {
	return interaction.Record{UserID: userID, ProductID: productID, Kind: interaction.KindRating, Rating: stars}
}

// ids extracts the product IDs from a scored result, in order.
func ids(scored []recommend.ScoredID) []int {
	out := make([]int, len(scored))
	for i, s := range scored {
		out[i] = s.ProductID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
