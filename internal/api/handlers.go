// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/pralina/internal/catalog"
	"github.com/tomtom215/pralina/internal/config"
	"github.com/tomtom215/pralina/internal/interaction"
	"github.com/tomtom215/pralina/internal/logging"
	"github.com/tomtom215/pralina/internal/metrics"
	"github.com/tomtom215/pralina/internal/recommend"
	"github.com/tomtom215/pralina/internal/validation"
)

// Handlers bundles the HTTP handlers and their dependencies.
type Handlers struct {
	catalog      catalog.Store
	interactions interaction.Store
	engine       *recommend.Engine
	cfg          *config.Config
}

// NewHandlers creates the handler set.
func NewHandlers(cat catalog.Store, inter interaction.Store, engine *recommend.Engine, cfg *config.Config) *Handlers {
	return &Handlers{
		catalog:      cat,
		interactions: inter,
		engine:       engine,
		cfg:          cfg,
	}
}

// HealthHandler reports service liveness.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// ListProductsHandler returns available products, optionally filtered by
// the category query parameter (a category slug).
func (h *Handlers) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var (
		products []catalog.Product
		err      error
	)
	if slug := r.URL.Query().Get("category"); slug != "" {
		products, err = h.catalog.ListByCategory(r.Context(), slug)
	} else {
		products, err = h.catalog.ListAvailable(r.Context())
	}
	if errors.Is(err, catalog.ErrNotFound) {
		rw.Error(http.StatusNotFound, ErrCodeNotFound, "category not found")
		return
	}
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to list products")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to list products")
		return
	}
	rw.Success(products)
}

// Recent-products listing bounds.
const (
	defaultRecentLimit = 8
	maxRecentLimit     = 50
)

// ListRecentProductsHandler returns the newest available products. The
// limit query parameter caps the count (default 8, at most 50).
func (h *Handlers) ListRecentProductsHandler(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			rw.Error(http.StatusBadRequest, ErrCodeBadRequest, "invalid limit parameter")
			return
		}
		if n > maxRecentLimit {
			n = maxRecentLimit
		}
		limit = n
	}

	products, err := h.catalog.ListRecent(r.Context(), limit)
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to list recent products")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to list products")
		return
	}
	rw.Success(products)
}

// productDetail is a product with its category resolved.
type productDetail struct {
	catalog.Product
	Category catalog.Category `json:"category"`
}

// GetProductHandler returns one product by slug, with its category.
func (h *Handlers) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, err := h.catalog.ProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, catalog.ErrNotFound) {
		rw.Error(http.StatusNotFound, ErrCodeNotFound, "product not found")
		return
	}
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to load product")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to load product")
		return
	}

	detail := productDetail{Product: p}
	cat, err := h.catalog.CategoryByID(r.Context(), p.CategoryID)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		logging.CtxErr(r.Context(), err).Msg("Failed to load category")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to load product")
		return
	}
	detail.Category = cat
	rw.Success(detail)
}

// ListCategoriesHandler returns all categories.
func (h *Handlers) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to list categories")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to list categories")
		return
	}
	rw.Success(categories)
}

// interactionRequest is the POST /interactions payload.
type interactionRequest struct {
	UserID    int    `json:"user_id" validate:"required,min=1"`
	ProductID int    `json:"product_id" validate:"required,min=1"`
	Kind      string `json:"kind" validate:"required,oneof=view cart purchase rating"`
	Rating    int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// CreateInteractionHandler records one user-product interaction.
func (h *Handlers) CreateInteractionHandler(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, "invalid interaction", verr.Fields)
			return
		}
		rw.Error(http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	// The referenced product must exist; unavailable products may still
	// receive interactions (e.g. a rating after the product sold out).
	if _, err := h.catalog.ProductByID(r.Context(), req.ProductID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			rw.Error(http.StatusNotFound, ErrCodeNotFound, "product not found")
			return
		}
		logging.CtxErr(r.Context(), err).Msg("Failed to resolve product")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to record interaction")
		return
	}

	rec, err := h.interactions.Add(r.Context(), interaction.Record{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Kind:      interaction.Kind(req.Kind),
		Rating:    req.Rating,
	})
	if err != nil {
		if errors.Is(err, interaction.ErrInvalidRating) {
			rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
			return
		}
		logging.CtxErr(r.Context(), err).Msg("Failed to store interaction")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "failed to record interaction")
		return
	}

	metrics.RecordInteraction(string(rec.Kind))
	rw.Created(rec)
}

// RecommendHandler computes recommendations for a user.
//
// Query parameters:
//   - method: hybrid | collaborative | content | clustering | clean |
//     popularity (empty selects hybrid)
//   - product: reference product ID for content-based and hybrid
//   - limit: result count (0 is honored as "none")
func (h *Handlers) RecommendHandler(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil || userID < 1 {
		rw.Error(http.StatusBadRequest, ErrCodeBadRequest, "invalid user ID")
		return
	}

	req := recommend.Request{
		UserID: userID,
		Method: r.URL.Query().Get("method"),
	}

	if v := r.URL.Query().Get("product"); v != "" {
		req.ProductID, err = strconv.Atoi(v)
		if err != nil || req.ProductID < 1 {
			rw.Error(http.StatusBadRequest, ErrCodeBadRequest, "invalid product parameter")
			return
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		req.Limit, err = strconv.Atoi(v)
		if err != nil || req.Limit < 0 {
			rw.Error(http.StatusBadRequest, ErrCodeBadRequest, "invalid limit parameter")
			return
		}
		if req.Limit > h.cfg.Recommend.MaxLimit {
			req.Limit = h.cfg.Recommend.MaxLimit
		}
		req.LimitSet = true
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if errors.Is(err, recommend.ErrInvalidStrategy) {
		rw.Error(http.StatusBadRequest, ErrCodeInvalidStrategy, err.Error())
		return
	}
	if err != nil {
		logging.CtxErr(r.Context(), err).Int("user_id", userID).Msg("Recommendation failed")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "recommendation failed")
		return
	}
	rw.Success(resp)
}

// RecommendMethodsHandler lists the registered strategy names.
func (h *Handlers) RecommendMethodsHandler(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"methods":  h.engine.Methods(),
		"default":  recommend.DefaultMethod,
		"fallback": recommend.FallbackMethod,
	})
}

func (h *Handlers) requestTimeout() time.Duration {
	if h.cfg != nil && h.cfg.Recommend.RequestTimeout > 0 {
		return h.cfg.Recommend.RequestTimeout
	}
	return 10 * time.Second
}
