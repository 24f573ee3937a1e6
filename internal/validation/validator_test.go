// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleInput struct {
	Name  string `validate:"required"`
	Kind  string `validate:"oneof=view cart purchase rating"`
	Count int    `validate:"min=1,max=10"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      sampleInput
		wantFields []string
	}{
		{
			name:  "valid",
			input: sampleInput{Name: "x", Kind: "view", Count: 3},
		},
		{
			name:       "missing name",
			input:      sampleInput{Kind: "cart", Count: 1},
			wantFields: []string{"sampleInput.Name"},
		},
		{
			name:       "bad enum and range",
			input:      sampleInput{Name: "x", Kind: "wishlist", Count: 0},
			wantFields: []string{"sampleInput.Kind", "sampleInput.Count"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Struct() error = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Struct() error = %T, want *ValidationError", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("Struct() fields = %v, want %d failures", verr.Fields, len(tt.wantFields))
			}
			for i, want := range tt.wantFields {
				if verr.Fields[i].Field != want {
					t.Errorf("field[%d] = %q, want %q", i, verr.Fields[i].Field, want)
				}
			}
		})
	}
}

func TestStructNonStruct(t *testing.T) {
	err := Struct(42)
	if err == nil {
		t.Fatal("Struct(42) = nil, want error")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Errorf("Struct(42) = *ValidationError, want raw validator error")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := Struct(sampleInput{Name: "x", Kind: "view", Count: 99})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}
	if !strings.Contains(err.Error(), "max=10") {
		t.Errorf("Error() = %q, want mention of max=10", err.Error())
	}
}

func TestVar(t *testing.T) {
	if err := Var(5, "min=1,max=10"); err != nil {
		t.Errorf("Var(5) error = %v, want nil", err)
	}
	if err := Var(50, "min=1,max=10"); err == nil {
		t.Error("Var(50) = nil, want error")
	}
}
