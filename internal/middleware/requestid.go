// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package middleware provides the HTTP middleware stack: request IDs and
// Prometheus instrumentation. Rate limiting and CORS come from the chi
// ecosystem and are wired in the router.
package middleware

import (
	"net/http"

	"github.com/tomtom215/pralina/internal/logging"
)

// RequestIDHeader is the canonical request ID header.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request ID to every request. An incoming
// X-Request-ID is trusted and propagated; otherwise a new UUID is
// generated. The ID is stored in the context for logging.Ctx and echoed
// back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
