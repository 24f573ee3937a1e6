// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package logging provides the process-wide zerolog logger.
//
// One global logger is configured at startup and shared everywhere:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("Listening")
//
// Handlers should log through Ctx so the request ID travels with the
// message:
//
//	logging.Ctx(ctx).Info().Int("user_id", id).Msg("Request processed")
//
// Every chain must end in .Msg() or .Send(); zerolog drops unterminated
// events silently.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the global logger.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, fatal,
	// disabled. Empty means info.
	Level string

	// Format selects json (default) or console output.
	Format string

	// Caller adds the file:line of the call site to each event.
	Caller bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	mu     sync.RWMutex
	global zerolog.Logger
)

//nolint:gochecknoinits // packages may log before main calls Init
func init() {
	global = build(Config{})
}

// Init reconfigures the global logger. Call it from main once the
// configuration is loaded; calling it again simply reconfigures.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	lc := zerolog.New(out).With().Timestamp()
	if cfg.Caller {
		lc = lc.Caller()
	}
	return lc.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetLogger swaps the global logger, mainly so tests can capture output.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// SetLevelString adjusts the global minimum level at runtime.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// With opens a child-logger builder on the global logger.
func With() zerolog.Context { return Logger().With() }

// WithComponent returns a child logger tagged with a component field.
//
//	engineLog := logging.WithComponent("recommend")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}

// The level starters bind the logger to a local first: zerolog's level
// methods have pointer receivers, and the copy Logger() returns is not
// addressable.

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Err starts an error-level event carrying err.
func Err(err error) *zerolog.Event {
	l := Logger()
	return l.Err(err)
}

// Fatal starts a fatal-level event; os.Exit(1) follows the Msg call.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}

// NewTestLogger returns a JSON logger writing to w, for capturing output
// in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
