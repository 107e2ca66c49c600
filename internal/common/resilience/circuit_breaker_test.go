package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/onion-recipes/internal/common/clock"
	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
)

func newTestBreaker(c clock.Clock) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Threshold:  2,
		Timeout:    time.Second,
		ResetAfter: time.Minute,
		Clock:      c,
	})
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	c := clock.NewMockClock(time.Unix(1000, 0))
	cb := newTestBreaker(c)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		err := cb.Call(context.Background(), func(context.Context) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("call %d: expected boom, got %v", i, err)
		}
	}

	called := false
	err := cb.Call(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, commonerrors.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("fn must not run while the circuit is open")
	}
}

func TestCircuitBreaker_ResetsAfterWindow(t *testing.T) {
	c := clock.NewMockClock(time.Unix(1000, 0))
	cb := newTestBreaker(c)
	boom := errors.New("boom")

	_ = cb.Call(context.Background(), func(context.Context) error { return boom })
	_ = cb.Call(context.Background(), func(context.Context) error { return boom })
	if !cb.IsOpen() {
		t.Fatal("expected open circuit")
	}

	c.Advance(2 * time.Minute)

	if err := cb.Call(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected closed circuit after reset window, got %v", err)
	}
}

func TestCircuitBreaker_IgnoresNotFound(t *testing.T) {
	cb := newTestBreaker(clock.NewMockClock(time.Unix(1000, 0)))

	for i := 0; i < 5; i++ {
		err := cb.Call(context.Background(), func(context.Context) error { return commonerrors.ErrUserNotFound })
		if !errors.Is(err, commonerrors.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	}
	if cb.IsOpen() {
		t.Error("not-found errors must not open the circuit")
	}
}

func TestCircuitBreaker_ZeroThresholdNeverOpens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		_ = cb.Call(context.Background(), func(context.Context) error { return boom })
	}
	if cb.IsOpen() {
		t.Error("zero threshold disables the breaker")
	}
}
