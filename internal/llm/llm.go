// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the text-generation collaborator used by the judge and
// summarize stages, and coerces its free-text replies into records.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrEmptyResponse is returned when the model reply carries no text block.
var ErrEmptyResponse = errors.New("model returned no text")

// Request is one generation call. Document, when set, is sent as a PDF
// attachment ahead of the prompt.
type Request struct {
	Model     string
	System    string
	Prompt    string
	Document  []byte
	MaxTokens int
}

// Generator abstracts the generation API so tests can supply a fake.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// permanent marks an error that must not be retried.
type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// callWithRetry calls fn with exponential backoff: backoffBase, 2x, 4x, ...
// Errors wrapped as permanent stop the loop immediately.
func callWithRetry(ctx context.Context, maxRetries int, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := fn()
		if err == nil {
			return text, nil
		}
		var p permanent
		if errors.As(err, &p) {
			return "", p.err
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
