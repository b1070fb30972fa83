package retrylimit

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr int

func (s statusErr) Error() string   { return http.StatusText(int(s)) }
func (s statusErr) StatusCode() int { return int(s) }

func fastConfig(attempts int) RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	cfg.RateLimitDelay = time.Millisecond
	cfg.Jitter = false
	return cfg
}

func TestWithRetryConfig_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		if calls < 3 {
			return statusErr(http.StatusBadGateway)
		}
		return nil
	}, nil, fastConfig(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryConfig_FatalStopsImmediately(t *testing.T) {
	calls := 0
	boom := errors.New("bad request")
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		return &FatalError{Err: boom}
	}, nil, fastConfig(5))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWithRetryConfig_ExhaustionWrapsLastError(t *testing.T) {
	err := WithRetryConfig(context.Background(), func() error {
		return statusErr(http.StatusServiceUnavailable)
	}, nil, fastConfig(2))

	var httpErr HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode())
}

func TestWithRetryConfig_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetryConfig(ctx, func() error { return nil }, nil, fastConfig(2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdaptiveLimiter_BacksOffAndStaysInBounds(t *testing.T) {
	lim := NewAdaptiveLimiter(8, 2, 10, 1, 0.5)

	lim.RateLimited()
	assert.Equal(t, 4.0, lim.CurrentLimit())
	lim.RateLimited()
	lim.RateLimited()
	assert.Equal(t, 2.0, lim.CurrentLimit())

	// Success is ignored during the cooldown after an error.
	lim.Success()
	assert.Equal(t, 2.0, lim.CurrentLimit())

	lim.cooldown = 0
	lim.lastError = time.Time{}
	for i := 0; i < 20; i++ {
		lim.Success()
	}
	assert.Equal(t, 10.0, lim.CurrentLimit())
}
