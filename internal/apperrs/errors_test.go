package apperrs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "plain message",
			err:      NotFound("composition %d not found", 7),
			expected: "composition 7 not found",
		},
		{
			name:     "wrapped cause",
			err:      Storage("failed to delete composition", errors.New("disk full")),
			expected: "failed to delete composition: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestKindClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{name: "not found", err: NotFound("missing"), kind: KindNotFound},
		{name: "forbidden", err: Forbidden("not yours"), kind: KindForbidden},
		{name: "validation", err: Validation("bad input", map[string]string{"rating": "out of range"}), kind: KindValidation},
		{name: "storage", err: Storage("insert failed", errors.New("constraint")), kind: KindStorage},
		{name: "unavailable", err: Unavailable("suggester down", errors.New("timeout")), kind: KindUnavailable},
		{name: "wrapped once more", err: fmt.Errorf("create composition: %w", Forbidden("not yours")), kind: KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *Error
			if !errors.As(tt.err, &appErr) {
				t.Fatal("expected an *apperrs.Error")
			}
			if appErr.Kind != tt.kind {
				t.Errorf("expected kind %d, got %d", tt.kind, appErr.Kind)
			}
		})
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("query failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}
}
