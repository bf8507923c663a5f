// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Override backoff to avoid real sleeps in retry tests.
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

func TestCallWithRetry(t *testing.T) {
	calls := 0
	text, err := callWithRetry(context.Background(), 3, func() (string, error) {
		calls++
		if calls <= 2 {
			return "", fmt.Errorf("transient error (call %d)", calls)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, calls)
}

func TestCallWithRetryExhaustion(t *testing.T) {
	calls := 0
	_, err := callWithRetry(context.Background(), 2, func() (string, error) {
		calls++
		return "", errors.New("always failing")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, 3, calls)
}

func TestCallWithRetryPermanent(t *testing.T) {
	calls := 0
	_, err := callWithRetry(context.Background(), 5, func() (string, error) {
		calls++
		return "", permanent{ErrEmptyResponse}
	})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, 1, calls)
}

func TestCallWithRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := callWithRetry(ctx, 5, func() (string, error) {
		calls++
		cancel()
		return "", errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestGeneratorFunc(t *testing.T) {
	var g Generator = GeneratorFunc(func(_ context.Context, req Request) (string, error) {
		return req.Model + ":" + req.Prompt, nil
	})
	out, err := g.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "m:p", out)
}
