package tests

import (
	"errors"
	"testing"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRelayRefused = errors.New("relay refused connection")

func failingSend() error { return errRelayRefused }
func workingSend() error { return nil }

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		TripAfter:  2,
		CloseAfter: 1,
		CoolDown:   time.Minute,
	})

	require.Equal(t, infra.CBClosed, cb.State())
	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
	require.Equal(t, infra.CBClosed, cb.State())
	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
	require.Equal(t, infra.CBOpen, cb.State())

	// Open circuit fast-fails without calling the send function.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerSuccessResetsFailureStreak(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		TripAfter:  2,
		CloseAfter: 1,
		CoolDown:   time.Minute,
	})

	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
	require.NoError(t, cb.Execute(workingSend))
	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)

	// Failures were not consecutive, so the circuit stays closed.
	assert.Equal(t, infra.CBClosed, cb.State())
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		TripAfter:  1,
		CloseAfter: 2,
		CoolDown:   20 * time.Millisecond,
	})

	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
	require.Equal(t, infra.CBOpen, cb.State())

	time.Sleep(40 * time.Millisecond)
	require.Equal(t, infra.CBHalfOpen, cb.State())

	// One success is not enough with CloseAfter=2.
	require.NoError(t, cb.Execute(workingSend))
	require.Equal(t, infra.CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(workingSend))
	assert.Equal(t, infra.CBClosed, cb.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		TripAfter:  1,
		CloseAfter: 1,
		CoolDown:   20 * time.Millisecond,
	})

	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
	time.Sleep(40 * time.Millisecond)
	require.Equal(t, infra.CBHalfOpen, cb.State())

	// A failed trial send restarts the cool-down.
	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
	assert.Equal(t, infra.CBOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(workingSend), infra.ErrCircuitOpen)
}

func TestBreakerZeroConfigFallsBackToDefaults(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{})

	// Defaults trip after 5 consecutive failures.
	for i := 0; i < 4; i++ {
		require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
		require.Equal(t, infra.CBClosed, cb.State())
	}
	require.ErrorIs(t, cb.Execute(failingSend), errRelayRefused)
	assert.Equal(t, infra.CBOpen, cb.State())
}
