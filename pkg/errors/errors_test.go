package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]any{
		"artifact": "classifier.yaml",
		"source":   "oci://ghcr.io/nvidia/nutrition-artifacts:v1",
	}

	err := WrapWithContext(ErrCodeTimeout, "artifact load failed", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["artifact"] != "classifier.yaml" {
		t.Errorf("expected artifact to be classifier.yaml")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeUnauthorized,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeMissingField,
		ErrCodeInvalidType,
		ErrCodeOutOfRange,
		ErrCodeInvalidEnum,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeMissingField, true},
		{ErrCodeInvalidType, true},
		{ErrCodeOutOfRange, true},
		{ErrCodeInvalidEnum, true},
		{ErrCodeInvalidRequest, true},
		{ErrCodeUnauthorized, false},
		{ErrCodeInternal, false},
		{ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.IsValidation(); got != tt.want {
				t.Errorf("IsValidation(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeMissingField, "Field 'age' is required.", map[string]any{"field": "age"})
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
	if err.Context["field"] != "age" {
		t.Errorf("expected field context age, got %v", err.Context["field"])
	}
	if got := err.Error(); got != "[MISSING_FIELD] Field 'age' is required." {
		t.Errorf("unexpected error string %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	missing := NewWithContext(ErrCodeMissingField, "Field 'age' is required.", map[string]any{"field": "age"})
	wrapped := fmt.Errorf("request rejected: %w", missing)

	if got := CodeOf(wrapped); got != ErrCodeMissingField {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, ErrCodeMissingField)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestIsValidationFunc(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeOutOfRange, "out of range"), true},
		{New(ErrCodeInvalidEnum, "bad gender"), true},
		{New(ErrCodeInvalidRequest, "Invalid JSON body"), true},
		{New(ErrCodeUnauthorized, "Unauthorized"), false},
		{Wrap(ErrCodeInternal, "model failed", fmt.Errorf("nan")), false},
		{fmt.Errorf("plain"), false},
	}
	for _, tt := range tests {
		if got := IsValidation(tt.err); got != tt.want {
			t.Errorf("IsValidation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
