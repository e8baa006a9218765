package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "chart %q has no nodes", "mueller")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != `chart "mueller" has no nodes` {
		t.Errorf("Message = %q", err.Message)
	}
	if want := `INVALID_INPUT: chart "mueller" has no nodes`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "parse family.json")

	if err.Cause != cause || errors.Unwrap(err) != cause {
		t.Errorf("Cause = %v, Unwrap = %v, want %v", err.Cause, errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if want := "INVALID_FORMAT: parse family.json: unexpected EOF"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	strict := New(ErrCodeInconsistentGenerations, "2 violations")
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", strict, ErrCodeInconsistentGenerations, true},
		{"other code", strict, ErrCodeForwardReference, false},
		{"outer code of wrapped", Wrap(ErrCodeInternal, strict, "layout"), ErrCodeInternal, true},
		{"fmt wrapped", fmt.Errorf("build layout: %w", strict), ErrCodeInconsistentGenerations, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeFileNotFound, "family.json"), ErrCodeFileNotFound},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	coded := Wrap(ErrCodeInvalidConfig, errors.New("line 3"), "unknown key layout.rowspacing")
	if got := UserMessage(coded); got != "unknown key layout.rowspacing" {
		t.Errorf("UserMessage(coded) = %q", got)
	}
	if got := UserMessage(errors.New("disk full")); got != "disk full" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid input", New(ErrCodeInvalidInput, "bad"), 400},
		{"invalid format", New(ErrCodeInvalidFormat, "bad"), 400},
		{"not found", New(ErrCodeNotFound, "missing"), 404},
		{"strict gaps", New(ErrCodeInconsistentGenerations, "gaps"), 422},
		{"forward reference", Wrap(ErrCodeForwardReference, errors.New("x"), "align"), 422},
		{"unsupported", New(ErrCodeUnsupported, "pdf"), 501},
		{"plain error", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.expected)
			}
		})
	}
}
