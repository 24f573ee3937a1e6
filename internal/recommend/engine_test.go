// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/interaction"
)

// stubStrategy lets tests script strategy behavior.
type stubStrategy struct {
	name string
	fn   func(ctx context.Context, ds *Dataset, req Request) ([]ScoredID, error)
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Recommend(ctx context.Context, ds *Dataset, req Request) ([]ScoredID, error) {
	return s.fn(ctx, ds, req)
}

func testStores(t *testing.T, productCount int) (*catalog.MemoryStore, *interaction.MemoryStore) {
	t.Helper()
	cat := catalog.NewMemoryStore()
	ctx := context.Background()
	for i := 1; i <= productCount; i++ {
		_, err := cat.AddProduct(ctx, catalog.Product{
			ID:        i,
			Name:      "bonbon",
			Price:     float64(i),
			Available: true,
			CreatedAt: time.Date(2026, 1, i, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("AddProduct() error = %v", err)
		}
	}
	return cat, interaction.NewMemoryStore()
}

func TestEngineUnknownMethod(t *testing.T) {
	cat, inter := testStores(t, 3)
	e := NewEngine(cat, inter, 0)

	_, err := e.Recommend(context.Background(), Request{UserID: 1, Method: "astrology"})
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("Recommend() error = %v, want ErrInvalidStrategy", err)
	}
}

func TestEngineExplicitZeroLimit(t *testing.T) {
	cat, inter := testStores(t, 3)
	e := NewEngine(cat, inter, 0)
	e.Register(&stubStrategy{name: "hybrid", fn: func(_ context.Context, _ *Dataset, _ Request) ([]ScoredID, error) {
		t.Error("strategy invoked for limit 0")
		return nil, nil
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: 1, Limit: 0, LimitSet: true})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("Recommend() returned %d results, want 0", len(resp.Results))
	}
}

func TestEngineDefaultLimit(t *testing.T) {
	cat, inter := testStores(t, 10)
	e := NewEngine(cat, inter, 0)
	e.Register(&stubStrategy{name: "hybrid", fn: func(_ context.Context, ds *Dataset, req Request) ([]ScoredID, error) {
		if req.Limit != DefaultLimit {
			t.Errorf("strategy saw limit %d, want %d", req.Limit, DefaultLimit)
		}
		var out []ScoredID
		for _, p := range ds.Products {
			out = append(out, ScoredID{ProductID: p.ID, Score: 1})
		}
		return out, nil
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Results) != DefaultLimit {
		t.Errorf("Recommend() returned %d results, want %d", len(resp.Results), DefaultLimit)
	}
	if resp.Method != DefaultMethod {
		t.Errorf("Method = %q, want %q", resp.Method, DefaultMethod)
	}
}

func TestEngineConfiguredDefaultLimit(t *testing.T) {
	cat, inter := testStores(t, 10)
	e := NewEngine(cat, inter, 3)
	e.Register(&stubStrategy{name: "hybrid", fn: func(_ context.Context, ds *Dataset, req Request) ([]ScoredID, error) {
		if req.Limit != 3 {
			t.Errorf("strategy saw limit %d, want configured 3", req.Limit)
		}
		var out []ScoredID
		for _, p := range ds.Products {
			out = append(out, ScoredID{ProductID: p.ID, Score: 1})
		}
		return out, nil
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Results) != 3 {
		t.Errorf("Recommend() returned %d results, want 3", len(resp.Results))
	}
}

func TestEngineFallbackOnInsufficientData(t *testing.T) {
	cat, inter := testStores(t, 3)
	e := NewEngine(cat, inter, 0)
	e.Register(&stubStrategy{name: "collaborative", fn: func(_ context.Context, _ *Dataset, _ Request) ([]ScoredID, error) {
		return nil, ErrInsufficientData
	}})
	e.Register(&stubStrategy{name: "popularity", fn: func(_ context.Context, _ *Dataset, _ Request) ([]ScoredID, error) {
		return []ScoredID{{ProductID: 2, Score: 1}}, nil
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: 1, Method: "collaborative"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !resp.FellBack {
		t.Error("FellBack = false, want true")
	}
	if len(resp.Results) != 1 || resp.Results[0].Product.ID != 2 {
		t.Errorf("Recommend() = %+v, want product 2", resp.Results)
	}
}

func TestEngineStrategyError(t *testing.T) {
	cat, inter := testStores(t, 3)
	e := NewEngine(cat, inter, 0)
	boom := errors.New("boom")
	e.Register(&stubStrategy{name: "hybrid", fn: func(_ context.Context, _ *Dataset, _ Request) ([]ScoredID, error) {
		return nil, boom
	}})

	_, err := e.Recommend(context.Background(), Request{UserID: 1})
	if !errors.Is(err, boom) {
		t.Errorf("Recommend() error = %v, want wrapped boom", err)
	}
}

func TestEngineResolveDropsDuplicatesAndUnknown(t *testing.T) {
	cat, inter := testStores(t, 3)
	e := NewEngine(cat, inter, 0)
	e.Register(&stubStrategy{name: "hybrid", fn: func(_ context.Context, _ *Dataset, _ Request) ([]ScoredID, error) {
		return []ScoredID{
			{ProductID: 2, Score: 3},
			{ProductID: 2, Score: 3},
			{ProductID: 99, Score: 2},
			{ProductID: 1, Score: 1},
		}, nil
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []int{2, 1}
	if len(resp.Results) != len(want) {
		t.Fatalf("Recommend() returned %d results, want %d", len(resp.Results), len(want))
	}
	for i, w := range want {
		if resp.Results[i].Product.ID != w {
			t.Errorf("Results[%d] = %d, want %d", i, resp.Results[i].Product.ID, w)
		}
	}
}

func TestEngineMethods(t *testing.T) {
	cat, inter := testStores(t, 1)
	e := NewEngine(cat, inter, 0)
	e.Register(&stubStrategy{name: "b"})
	e.Register(&stubStrategy{name: "a"})

	got := e.Methods()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Methods() = %v, want [a b]", got)
	}
}
