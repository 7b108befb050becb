package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/resilience"
)

var errTransient = errors.New("transient")

func lenientBreaker(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	cfg.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.Requests >= 100 }
	return &cfg
}

func TestGuard_Success(t *testing.T) {
	guard := resilience.NewGuard(resilience.GuardConfig{Name: "ok"})

	calls := 0
	err := guard.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, gobreaker.StateClosed, guard.State())
}

func TestGuard_RetriesUntilSuccess(t *testing.T) {
	guard := resilience.NewGuard(resilience.GuardConfig{
		Name:            "retry",
		MaxRetries:      5,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		CircuitBreaker:  lenientBreaker("retry"),
	})

	calls := 0
	err := guard.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint32(2), guard.Counts().TotalFailures)
}

func TestGuard_GivesUpAfterMaxRetries(t *testing.T) {
	guard := resilience.NewGuard(resilience.GuardConfig{
		Name:            "exhaust",
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		CircuitBreaker:  lenientBreaker("exhaust"),
	})

	calls := 0
	err := guard.Do(context.Background(), func(context.Context) error {
		calls++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
}

func TestGuard_PermanentErrorsAreNotRetried(t *testing.T) {
	guard := resilience.NewGuard(resilience.GuardConfig{Name: "permanent", InitialInterval: time.Millisecond})

	calls := 0
	err := guard.Do(context.Background(), func(context.Context) error {
		calls++
		return backoff.Permanent(errTransient)
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestGuard_CircuitOpens(t *testing.T) {
	guard := resilience.NewGuard(resilience.GuardConfig{
		Name:            "trip",
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		CircuitBreaker: &resilience.CircuitBreakerConfig{
			Name:        "trip",
			MaxRequests: 1,
			Timeout:     time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 3 },
		},
	})

	failing := func(context.Context) error { return errTransient }
	for i := 0; i < 2; i++ {
		_ = guard.Do(context.Background(), failing)
	}
	require.Equal(t, gobreaker.StateOpen, guard.State())

	calls := 0
	err := guard.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Zero(t, calls)
}

func TestGuard_StopsOnContextCancel(t *testing.T) {
	guard := resilience.NewGuard(resilience.GuardConfig{
		Name:            "cancel",
		MaxRetries:      10,
		InitialInterval: 50 * time.Millisecond,
		CircuitBreaker:  lenientBreaker("cancel"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := guard.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errTransient
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
