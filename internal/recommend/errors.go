// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package recommend

import "errors"

var (
	// ErrInvalidStrategy is returned when the requested method does not
	// name a registered strategy. It surfaces to API callers as a 400.
	ErrInvalidStrategy = errors.New("recommend: unknown strategy")

	// ErrInsufficientData signals that a strategy cannot produce a
	// meaningful result from the current data. The engine catches it and
	// falls back to popularity without surfacing an error.
	ErrInsufficientData = errors.New("recommend: insufficient data")
)
