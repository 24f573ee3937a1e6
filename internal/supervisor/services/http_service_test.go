// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

// fakeServer simulates an HTTP server whose lifecycle the test controls.
type fakeServer struct {
	serveErr    error
	shutdownErr error
	release     chan struct{}
	shutdowns   int
}

func (f *fakeServer) ListenAndServe() error {
	if f.release != nil {
		<-f.release
	}
	return f.serveErr
}

func (f *fakeServer) Shutdown(_ context.Context) error {
	f.shutdowns++
	if f.release != nil {
		close(f.release)
	}
	return f.shutdownErr
}

func TestServeReturnsServerError(t *testing.T) {
	boom := errors.New("listen tcp: address in use")
	svc := NewHTTPServerService("test", &fakeServer{serveErr: boom}, time.Second)

	err := svc.Serve(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Serve() error = %v, want wrapped %v", err, boom)
	}
}

func TestServeCleanCloseIsNil(t *testing.T) {
	svc := NewHTTPServerService("test", &fakeServer{serveErr: http.ErrServerClosed}, time.Second)

	if err := svc.Serve(context.Background()); err != nil {
		t.Errorf("Serve() error = %v, want nil on ErrServerClosed", err)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := &fakeServer{serveErr: http.ErrServerClosed, release: make(chan struct{})}
	svc := NewHTTPServerService("test", srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if srv.shutdowns != 1 {
		t.Errorf("shutdowns = %d, want 1", srv.shutdowns)
	}
}

func TestServeReportsShutdownFailure(t *testing.T) {
	shutdownErr := errors.New("connections still draining")
	srv := &fakeServer{serveErr: http.ErrServerClosed, release: make(chan struct{}), shutdownErr: shutdownErr}
	svc := NewHTTPServerService("test", srv, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, shutdownErr) {
		t.Errorf("Serve() error = %v, want wrapped %v", err, shutdownErr)
	}
}

func TestString(t *testing.T) {
	svc := NewHTTPServerService("http-server", &fakeServer{}, time.Second)
	if got := svc.String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
}
