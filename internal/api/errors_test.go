package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pizzeria/internal/apperrs"

	"github.com/gin-gonic/gin"
)

func TestWriteServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "not found",
			err:            apperrs.NotFound("composition with id %d not found", 12),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "forbidden",
			err:            apperrs.Forbidden("you are not allowed to modify this composition"),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "validation",
			err:            apperrs.Validation("validation failed", map[string]string{"rating": "out of range"}),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unavailable",
			err:            apperrs.Unavailable("ingredient suggestion failed", errors.New("timeout")),
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "storage",
			err:            apperrs.Storage("failed to create composition", errors.New("disk full")),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "untyped",
			err:            errors.New("something unexpected"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeServiceError(c, tt.err)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestValidationFailedCarriesFieldMap(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationFailed(c, map[string]string{"rating": "must be an integer between 1 and 6"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Errors["rating"] == "" {
		t.Errorf("expected rating field error, got %+v", response.Errors)
	}
}

func TestNormalisePublicBase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "/files"},
		{input: "files", expected: "/files"},
		{input: "/uploads/", expected: "/uploads"},
		{input: "https://cdn.example.com/photos/", expected: "https://cdn.example.com/photos"},
	}

	for _, tt := range tests {
		if got := normalisePublicBase(tt.input); got != tt.expected {
			t.Errorf("normalisePublicBase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
