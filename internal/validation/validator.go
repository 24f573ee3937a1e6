// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package validation wraps go-playground/validator behind a process-wide
// singleton, so every package validates with the same tag semantics.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// instance returns the shared validator, building it on first use.
func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Rule)
}

// ValidationError aggregates the field errors of one Struct call.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Struct validates a struct by its validate tags. Returns nil on success,
// a *ValidationError on rule failures, or the raw error on misuse (such as
// passing a non-struct).
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// Var validates a single variable against a tag expression.
//
//	validation.Var(limit, "min=0,max=100")
func Var(v any, tag string) error {
	return instance().Var(v, tag)
}
