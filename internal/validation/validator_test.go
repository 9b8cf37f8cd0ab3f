// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package validation

import (
	"math"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

type weightsSection struct {
	Content float64 `koanf:"content" validate:"finite,gte=0"`
}

type settings struct {
	Level   string         `koanf:"level" validate:"required,loglevel"`
	Listen  string         `koanf:"listen" validate:"omitempty,hostname_port"`
	Format  string         `koanf:"format" validate:"oneof=json console"`
	Weights weightsSection `koanf:"weights"`
}

type trendingQuery struct {
	TopN int `query:"top_n" validate:"min=1,max=500"`
}

func validSettings() settings {
	return settings{Level: "info", Listen: "127.0.0.1:9090", Format: "json", Weights: weightsSection{Content: 0.25}}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	s := validSettings()
	if err := ValidateStruct(&s); err != nil {
		t.Errorf("ValidateStruct() error = %v", err)
	}

	q := trendingQuery{TopN: 500}
	if err := ValidateStruct(&q); err != nil {
		t.Errorf("ValidateStruct(query) error = %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*settings)
		wantField string
		wantTag   string
	}{
		{"unknown level", func(s *settings) { s.Level = "verbose" }, "level", "loglevel"},
		{"missing level", func(s *settings) { s.Level = "" }, "level", "required"},
		{"bad listen address", func(s *settings) { s.Listen = "nope" }, "listen", "hostname_port"},
		{"bad format", func(s *settings) { s.Format = "xml" }, "format", "oneof"},
		{"negative weight", func(s *settings) { s.Weights.Content = -1 }, "weights.content", "gte"},
		{"NaN weight", func(s *settings) { s.Weights.Content = math.NaN() }, "weights.content", "finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSettings()
			tt.mutate(&s)

			err := ValidateStruct(&s)
			if err == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if !strings.HasPrefix(errs[0].Error(), tt.wantField) {
				t.Errorf("message %q should start with the field path", errs[0].Error())
			}
		})
	}
}

func TestValidateStruct_QueryTagNames(t *testing.T) {
	t.Parallel()

	q := trendingQuery{TopN: 0}
	err := ValidateStruct(&q)
	if err == nil {
		t.Fatal("ValidateStruct() expected error")
	}
	if got := err.Error(); got != "top_n must be at least 1" {
		t.Errorf("Error() = %q, want %q", got, "top_n must be at least 1")
	}
	if err.Errors()[0].Param() != "1" {
		t.Errorf("Param() = %q, want 1", err.Errors()[0].Param())
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single error", func(t *testing.T) {
		t.Parallel()
		q := trendingQuery{TopN: 900}
		apiErr := ValidateStruct(&q).ToAPIError()

		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Message != "top_n must be at most 500" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.Details["field"] != "top_n" || apiErr.Details["value"] != 900 {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		t.Parallel()
		s := validSettings()
		s.Level = "loud"
		s.Format = "yaml"
		apiErr := ValidateStruct(&s).ToAPIError()

		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "level") || !strings.Contains(apiErr.Message, "format") {
			t.Errorf("Message = %q, want both fields", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}
