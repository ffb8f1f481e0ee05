package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker(BreakerConfig{Name: "test-trip", MaxFailures: 2, Timeout: time.Minute})
	boom := errors.New("connection refused")

	calls := 0
	failing := func(context.Context) (interface{}, error) {
		calls++
		return nil, boom
	}

	for i := 0; i < 2; i++ {
		_, err := b.Do(context.Background(), failing)
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, "open", b.State())

	_, err := b.Do(context.Background(), failing)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, calls)
}

func TestBreaker_CancellationDoesNotTrip(t *testing.T) {
	b := NewBreaker(BreakerConfig{Name: "test-cancel", MaxFailures: 1, Timeout: time.Minute})

	_, err := b.Do(context.Background(), func(context.Context) (interface{}, error) {
		return nil, context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "closed", b.State())
}

func TestBreaker_PassesResultThrough(t *testing.T) {
	b := NewBreaker(BreakerConfig{Name: "test-ok"})

	got, err := b.Do(context.Background(), func(context.Context) (interface{}, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	l := NewLimiter(0.001, 2, 0)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
	assert.ErrorIs(t, l.Wait(context.Background()), ErrRateLimited)
}

func TestLimiter_WaitGivesUpAfterMaxWait(t *testing.T) {
	l := NewLimiter(0.001, 1, 10*time.Millisecond)

	require.NoError(t, l.Wait(context.Background()))
	assert.ErrorIs(t, l.Wait(context.Background()), ErrRateLimited)
}
