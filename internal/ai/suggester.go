// Package ai defines the ingredient-suggestion boundary. The production
// backend is not integrated yet; the mock implementation stands in for it and
// must be treated as a fallible, latency-bearing external call.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnavailable marks failures of the suggestion backend. The HTTP boundary
// maps errors wrapping it to 503.
var ErrUnavailable = errors.New("ingredient suggestion service unavailable")

// Suggestion is the outcome of one suggestion run.
type Suggestion struct {
	// Ingredients is a superset of the seed ingredients, at most 10 entries.
	Ingredients []string
	// DurationMS is the elapsed generation time in milliseconds.
	DurationMS int64
}

// Suggester expands 1-3 seed ingredients into a full ingredient list.
type Suggester interface {
	SuggestIngredients(ctx context.Context, seeds []string) (*Suggestion, error)
}

const maxSuggestedIngredients = 10

// MockSuggester is a deterministic stand-in for the real suggestion backend.
// It appends two fixed placeholder ingredients after a configurable delay.
type MockSuggester struct {
	delay time.Duration
}

// NewMockSuggester creates a mock suggester with the given simulated latency.
func NewMockSuggester(delay time.Duration) *MockSuggester {
	if delay < 0 {
		delay = 0
	}
	return &MockSuggester{delay: delay}
}

// SuggestIngredients implements Suggester. Cancellation of the context is
// reported as an ErrUnavailable failure.
func (s *MockSuggester) SuggestIngredients(ctx context.Context, seeds []string) (*Suggestion, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seed ingredients", ErrUnavailable)
	}

	started := time.Now()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-timer.C:
		}
	}

	suggested := make([]string, 0, len(seeds)+2)
	suggested = append(suggested, seeds...)
	suggested = append(suggested, "Suggested Ingredient 1", "Suggested Ingredient 2")
	if len(suggested) > maxSuggestedIngredients {
		suggested = suggested[:maxSuggestedIngredients]
	}

	elapsed := time.Since(started).Milliseconds()

	logrus.WithFields(logrus.Fields{
		"seeds":       len(seeds),
		"suggested":   len(suggested),
		"duration_ms": elapsed,
	}).Debug("mock ingredient suggestion completed")

	return &Suggestion{
		Ingredients: suggested,
		DurationMS:  elapsed,
	}, nil
}

var _ Suggester = (*MockSuggester)(nil)
