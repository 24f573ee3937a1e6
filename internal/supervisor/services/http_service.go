// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package services provides suture.Service wrappers for long-running
// components so they can live under the supervision tree.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/pralina/internal/logging"
)

// HTTPServer is the subset of *http.Server the service needs. Declared as an
// interface so tests can substitute a fake.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService adapts an HTTP server to the suture.Service interface.
// When the supervisor cancels the context the server is shut down gracefully,
// bounded by shutdownTimeout.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService wraps server for supervision. A zero shutdownTimeout
// defaults to 10 seconds.
func NewHTTPServerService(name string, server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            name,
	}
}

// Serve runs the server until it fails or ctx is cancelled. A clean
// http.ErrServerClosed is reported as nil so the supervisor does not restart
// a server that was deliberately stopped.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	log := logging.With().Str("service", s.name).Logger()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s: serve: %w", s.name, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown failed")
			return fmt.Errorf("%s: shutdown: %w", s.name, err)
		}

		log.Info().Msg("HTTP server stopped")
		return ctx.Err()
	}
}

// String implements fmt.Stringer for supervisor log output.
func (s *HTTPServerService) String() string {
	return s.name
}
