// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// slogBridge implements slog.Handler on top of zerolog so libraries that
// speak slog (the supervisor's event hook, for one) share the global logger.
type slogBridge struct {
	logger zerolog.Logger
	attrs  []slog.Attr
	prefix string
}

// NewSlogLogger returns an *slog.Logger backed by the global zerolog logger.
func NewSlogLogger() *slog.Logger {
	return slog.New(&slogBridge{logger: Logger()})
}

func (b *slogBridge) Enabled(_ context.Context, level slog.Level) bool {
	return b.logger.GetLevel() <= zerologLevel(level)
}

//nolint:gocritic // slog.Record is passed by value per the slog.Handler interface
func (b *slogBridge) Handle(_ context.Context, record slog.Record) error {
	event := b.logger.WithLevel(zerologLevel(record.Level))
	for _, attr := range b.attrs {
		event = appendAttr(event, attr, b.prefix)
	}
	record.Attrs(func(attr slog.Attr) bool {
		event = appendAttr(event, attr, b.prefix)
		return true
	})
	event.Msg(record.Message)
	return nil
}

func (b *slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	merged = append(merged, b.attrs...)
	merged = append(merged, attrs...)
	return &slogBridge{logger: b.logger, attrs: merged, prefix: b.prefix}
}

func (b *slogBridge) WithGroup(name string) slog.Handler {
	if name == "" {
		return b
	}
	return &slogBridge{logger: b.logger, attrs: b.attrs, prefix: b.prefix + name + "."}
}

func appendAttr(event *zerolog.Event, attr slog.Attr, prefix string) *zerolog.Event {
	key := prefix + attr.Key
	switch attr.Value.Kind() {
	case slog.KindString:
		return event.Str(key, attr.Value.String())
	case slog.KindInt64:
		return event.Int64(key, attr.Value.Int64())
	case slog.KindUint64:
		return event.Uint64(key, attr.Value.Uint64())
	case slog.KindFloat64:
		return event.Float64(key, attr.Value.Float64())
	case slog.KindBool:
		return event.Bool(key, attr.Value.Bool())
	case slog.KindDuration:
		return event.Dur(key, attr.Value.Duration())
	case slog.KindTime:
		return event.Time(key, attr.Value.Time())
	case slog.KindGroup:
		for _, ga := range attr.Value.Group() {
			event = appendAttr(event, ga, prefix+attr.Key+".")
		}
		return event
	default:
		return event.Interface(key, attr.Value.Any())
	}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
