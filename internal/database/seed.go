// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/logging"
)

// SeedDemoData loads the demo catalog into an empty database. A database
// that already has products is left untouched, so the flag is safe to keep
// enabled across restarts.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("checking product count: %w", err)
	}
	if count > 0 {
		return nil
	}

	store := db.Catalog()
	base := time.Now().UTC().AddDate(0, 0, -len(demoProducts))

	catIDs := make(map[string]int, len(demoCategories))
	for _, c := range demoCategories {
		created, err := store.AddCategory(ctx, c)
		if err != nil {
			return fmt.Errorf("seeding category %s: %w", c.Slug, err)
		}
		catIDs[c.Slug] = created.ID
	}

	for i, d := range demoProducts {
		p := d.product
		p.CategoryID = catIDs[d.categorySlug]
		p.Available = true
		p.CreatedAt = base.AddDate(0, 0, i)
		if _, err := store.AddProduct(ctx, p); err != nil {
			return fmt.Errorf("seeding product %s: %w", p.Slug, err)
		}
	}

	logging.Info().
		Int("categories", len(demoCategories)).
		Int("products", len(demoProducts)).
		Msg("Demo catalog seeded")
	return nil
}

var demoCategories = []catalog.Category{
	{Name: "Truffles", Slug: "truffles"},
	{Name: "Pralines", Slug: "pralines"},
	{Name: "Chocolate Bars", Slug: "bars"},
	{Name: "Gift Boxes", Slug: "gift-boxes"},
}

type demoProduct struct {
	categorySlug string
	product      catalog.Product
}

var demoProducts = []demoProduct{
	{"truffles", catalog.Product{
		Name: "Dark Cocoa Truffle", Slug: "dark-cocoa-truffle", Price: 4.50,
		Description:   "Single-origin dark chocolate rolled in raw cocoa.",
		Ingredients:   "dark chocolate cocoa cream butter",
		FlavorProfile: "bitter intense roasted",
		Occasion:      "everyday indulgence",
	}},
	{"truffles", catalog.Product{
		Name: "Champagne Truffle", Slug: "champagne-truffle", Price: 5.90,
		Description:   "Milk chocolate ganache infused with Marc de Champagne.",
		Ingredients:   "milk chocolate cream champagne butter sugar",
		FlavorProfile: "sweet floral sparkling",
		Occasion:      "celebration anniversary",
	}},
	{"truffles", catalog.Product{
		Name: "Vanilla Bean Truffle", Slug: "vanilla-bean-truffle", Price: 4.80,
		Description:   "White chocolate ganache with Madagascan vanilla.",
		Ingredients:   "white chocolate vanilla cream sugar",
		FlavorProfile: "sweet creamy vanilla",
		Occasion:      "everyday gift",
	}},
	{"pralines", catalog.Product{
		Name: "Hazelnut Praline", Slug: "hazelnut-praline", Price: 3.90,
		Description:   "Caramelized Piedmont hazelnuts in milk chocolate.",
		Ingredients:   "milk chocolate hazelnut caramel sugar",
		FlavorProfile: "nutty sweet caramel",
		Occasion:      "everyday",
	}},
	{"pralines", catalog.Product{
		Name: "Pistachio Praline", Slug: "pistachio-praline", Price: 4.20,
		Description:   "Sicilian pistachio paste under a dark chocolate shell.",
		Ingredients:   "dark chocolate pistachio sugar butter",
		FlavorProfile: "nutty earthy",
		Occasion:      "gift",
	}},
	{"pralines", catalog.Product{
		Name: "Salted Caramel Praline", Slug: "salted-caramel-praline", Price: 4.10,
		Description:   "Soft caramel with fleur de sel in milk chocolate.",
		Ingredients:   "milk chocolate caramel sea salt butter cream",
		FlavorProfile: "sweet salty caramel",
		Occasion:      "everyday indulgence",
	}},
	{"bars", catalog.Product{
		Name: "72% Single Origin Bar", Slug: "72-single-origin-bar", Price: 6.50,
		Description:   "Bean-to-bar dark chocolate from a single Ecuadorian estate.",
		Ingredients:   "cocoa beans cocoa butter sugar",
		FlavorProfile: "bitter fruity intense",
		Occasion:      "everyday tasting",
	}},
	{"bars", catalog.Product{
		Name: "Milk and Hazelnut Bar", Slug: "milk-hazelnut-bar", Price: 5.80,
		Description:   "Creamy milk chocolate studded with roasted hazelnuts.",
		Ingredients:   "milk chocolate hazelnut sugar",
		FlavorProfile: "sweet nutty creamy",
		Occasion:      "everyday",
	}},
	{"bars", catalog.Product{
		Name: "Matcha White Bar", Slug: "matcha-white-bar", Price: 6.90,
		Description:   "White chocolate blended with ceremonial matcha.",
		Ingredients:   "white chocolate matcha sugar cocoa butter",
		FlavorProfile: "bitter sweet grassy",
		Occasion:      "tasting gift",
	}},
	{"gift-boxes", catalog.Product{
		Name: "Signature Box of 12", Slug: "signature-box-12", Price: 24.00,
		Description:   "A dozen of the house's best truffles and pralines.",
		Ingredients:   "dark chocolate milk chocolate hazelnut caramel cream vanilla",
		FlavorProfile: "assorted sweet nutty",
		Occasion:      "gift celebration birthday",
	}},
	{"gift-boxes", catalog.Product{
		Name: "Valentine Heart Box", Slug: "valentine-heart-box", Price: 29.50,
		Description:   "Heart-shaped box of champagne and vanilla truffles.",
		Ingredients:   "milk chocolate white chocolate champagne vanilla cream",
		FlavorProfile: "sweet floral romantic",
		Occasion:      "valentine anniversary romance",
	}},
	{"gift-boxes", catalog.Product{
		Name: "Tasting Flight Box", Slug: "tasting-flight-box", Price: 32.00,
		Description:   "Six single-origin bars arranged from mild to intense.",
		Ingredients:   "cocoa beans cocoa butter sugar",
		FlavorProfile: "bitter fruity intense assorted",
		Occasion:      "tasting gift connoisseur",
	}},
}
