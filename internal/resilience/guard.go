package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the circuit breaker rejects a call.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// GuardConfig holds configuration for a Guard.
type GuardConfig struct {
	// Name identifies the guard in logs.
	Name string

	// MaxRetries is the number of retries after the first attempt. Default: 3.
	MaxRetries uint64

	// InitialInterval is the first retry delay. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the retry delay. Default: 5s.
	MaxInterval time.Duration

	// CircuitBreaker configures the breaker. Nil uses DefaultCircuitBreakerConfig.
	CircuitBreaker *CircuitBreakerConfig
}

// Guard runs operations through a circuit breaker, retrying failures with
// exponential backoff. Once the breaker opens, calls fail fast with ErrCircuitOpen.
type Guard struct {
	breaker *gobreaker.CircuitBreaker[struct{}]
	config  GuardConfig
}

// NewGuard creates a Guard, filling unset fields with defaults.
func NewGuard(cfg GuardConfig) *Guard {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	cbConfig := DefaultCircuitBreakerConfig(cfg.Name)
	if cfg.CircuitBreaker != nil {
		cbConfig = *cfg.CircuitBreaker
	}

	return &Guard{
		breaker: NewCircuitBreaker[struct{}](cbConfig),
		config:  cfg,
	}
}

// Do runs op until it succeeds, retries are exhausted, ctx ends or the breaker opens.
// Errors wrapped with backoff.Permanent are not retried.
func (g *Guard) Do(ctx context.Context, op func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.config.InitialInterval
	bo.MaxInterval = g.config.MaxInterval
	bo.MaxElapsedTime = 0 // bounded by MaxRetries

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, g.config.MaxRetries), ctx)

	return backoff.Retry(func() error {
		_, err := g.breaker.Execute(func() (struct{}, error) {
			return struct{}{}, op(ctx)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(ErrCircuitOpen)
		}
		return err
	}, policy)
}

// State returns the current circuit breaker state.
func (g *Guard) State() gobreaker.State {
	return g.breaker.State()
}

// Counts returns the current circuit breaker counts.
func (g *Guard) Counts() gobreaker.Counts {
	return g.breaker.Counts()
}
