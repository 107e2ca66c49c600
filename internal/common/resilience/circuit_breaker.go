package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/AlibekovAA/onion-recipes/internal/common/clock"
	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
)

type CircuitBreaker struct {
	failures    atomic.Int32
	lastFailure atomic.Value
	threshold   int32
	timeout     time.Duration
	resetAfter  time.Duration
	name        string
	ignore      func(error) bool
	clock       clock.Clock
	log         *logger.Logger
}

type CircuitBreakerConfig struct {
	Threshold  int32
	Timeout    time.Duration
	ResetAfter time.Duration
	Name       string
	// Ignore reports errors that are answers rather than outages, such as
	// not-found lookups. They are returned without counting as failures.
	Ignore func(error) bool
	Clock  clock.Clock
	Logger *logger.Logger
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	c := config.Clock
	if c == nil {
		c = clock.NewRealClock()
	}
	ignore := config.Ignore
	if ignore == nil {
		ignore = IgnoreNotFound
	}
	cb := &CircuitBreaker{
		threshold:  config.Threshold,
		timeout:    config.Timeout,
		resetAfter: config.ResetAfter,
		name:       config.Name,
		ignore:     ignore,
		clock:      c,
		log:        config.Logger,
	}
	cb.lastFailure.Store(time.Time{})
	return cb
}

func IgnoreNotFound(err error) bool {
	de, ok := commonerrors.AsDomainError(err)
	return ok && de.Category() == commonerrors.CategoryNotFound
}

func (cb *CircuitBreaker) IsOpen() bool {
	if cb.threshold <= 0 || cb.failures.Load() < cb.threshold {
		cb.setState(0)
		return false
	}

	lastFailure := cb.lastFailure.Load().(time.Time)
	if lastFailure.IsZero() {
		cb.setState(0)
		return false
	}

	if cb.clock.Now().Sub(lastFailure) > cb.resetAfter {
		cb.reset()
		cb.setState(0)
		return false
	}

	cb.setState(1)
	return true
}

func (cb *CircuitBreaker) setState(state float64) {
	if cb.name != "" {
		metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(state)
	}
}

func (cb *CircuitBreaker) recordFailure() {
	cb.failures.Add(1)
	cb.lastFailure.Store(cb.clock.Now())
	if cb.name != "" {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.name).Inc()
	}
	if cb.log != nil {
		cb.log.Warnf("circuit breaker [%s]: failure recorded", cb.name)
	}
}

func (cb *CircuitBreaker) reset() {
	cb.failures.Store(0)
	cb.lastFailure.Store(time.Time{})
}

func (cb *CircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if cb.IsOpen() {
		if cb.log != nil {
			cb.log.Warnf("circuit breaker [%s]: circuit is open, rejecting request", cb.name)
		}
		return commonerrors.ErrCircuitOpen
	}

	callCtx := ctx
	if cb.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cb.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	if err != nil {
		if cb.ignore(err) || errors.Is(err, context.Canceled) {
			return err
		}
		cb.recordFailure()
		return err
	}

	cb.reset()
	return nil
}
