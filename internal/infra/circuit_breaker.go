package infra

// The SMTP relay is the only external service the notification pipeline
// talks to, and it tends to fail in bursts. The breaker fast-fails sends
// while the relay is down instead of burning every queued mail's retry
// budget against a dead connection.
//
// Transitions:
//
//	closed    → open       after TripAfter consecutive failures
//	open      → half-open  once CoolDown has elapsed
//	half-open → closed     after CloseAfter consecutive successes
//	half-open → open       on the first failed trial send

import (
	"errors"
	"sync"
	"time"
)

// CBState is the breaker position, exposed on /health as a string.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned without touching the relay while the breaker
// is open. Callers treat it like any other delivery failure.
var ErrCircuitOpen = errors.New("smtp circuit open")

type CircuitBreakerConfig struct {
	TripAfter  int           // consecutive failures before the circuit opens
	CloseAfter int           // consecutive half-open successes before it closes
	CoolDown   time.Duration // open period before a half-open trial is allowed
}

// DefaultCBConfig matches how the SMTP relay misbehaves in practice: five
// straight refusals usually mean an outage, and a minute is enough for its
// connection pool to recover.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		TripAfter:  5,
		CloseAfter: 2,
		CoolDown:   time.Minute,
	}
}

type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu        sync.Mutex
	state     CBState
	failures  int
	successes int
	openedAt  time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.TripAfter <= 0 {
		cfg.TripAfter = def.TripAfter
	}
	if cfg.CloseAfter <= 0 {
		cfg.CloseAfter = def.CloseAfter
	}
	if cfg.CoolDown <= 0 {
		cfg.CoolDown = def.CoolDown
	}
	return &CircuitBreaker{cfg: cfg, state: CBClosed}
}

// State reports the current position, promoting open to half-open once the
// cool-down has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() CBState {
	if cb.state == CBOpen && time.Since(cb.openedAt) >= cb.cfg.CoolDown {
		cb.state = CBHalfOpen
		cb.successes = 0
	}
	return cb.state
}

// Execute runs send through the breaker. While open it returns
// ErrCircuitOpen without calling send at all.
func (cb *CircuitBreaker) Execute(send func() error) error {
	cb.mu.Lock()
	if cb.stateLocked() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := send()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.recordFailure()
		return err
	}
	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) recordFailure() {
	switch cb.state {
	case CBClosed:
		cb.failures++
		if cb.failures >= cb.cfg.TripAfter {
			cb.trip()
		}
	case CBHalfOpen:
		cb.trip()
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	switch cb.state {
	case CBClosed:
		cb.failures = 0
	case CBHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.CloseAfter {
			cb.state = CBClosed
			cb.failures = 0
			cb.successes = 0
		}
	}
}

// trip opens the circuit and restarts the cool-down clock.
func (cb *CircuitBreaker) trip() {
	cb.state = CBOpen
	cb.openedAt = time.Now()
	cb.failures = 0
	cb.successes = 0
}
