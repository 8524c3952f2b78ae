// Package resilience guards calls to upstream HTTP dependencies.
package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// OpenError is returned for a rejected call. It matches ErrCircuitOpen with
// errors.Is.
type OpenError struct {
	Breaker string
	// RetryIn is the rest of the open window; zero when the half-open probe
	// slots are taken.
	RetryIn time.Duration
}

func (e *OpenError) Error() string {
	if e.RetryIn <= 0 {
		return fmt.Sprintf("%s: %s (probe limit reached)", e.Breaker, ErrCircuitOpen)
	}
	return fmt.Sprintf("%s: %s (retry in %s)", e.Breaker, ErrCircuitOpen, e.RetryIn.Round(time.Millisecond))
}

func (e *OpenError) Unwrap() error { return ErrCircuitOpen }

// RetryAfter reports how long a caller should wait before trying again.
func (e *OpenError) RetryAfter() time.Duration { return e.RetryIn }

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc is called outside the breaker lock after each transition.
type StateChangeFunc func(name string, from, to CircuitState)

// CircuitBreaker opens after FailureThreshold consecutive failures, rejects
// calls for OpenTimeout and then lets HalfOpenProbes trial calls through.
// All probes must succeed to close it again.
type CircuitBreaker struct {
	name     string
	cfg      CircuitBreakerConfig
	onChange StateChangeFunc
	now      func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	inFlight int
	passed   int
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig, onChange StateChangeFunc) *CircuitBreaker {
	return &CircuitBreaker{
		name:     name,
		cfg:      cfg.withDefaults(),
		onChange: onChange,
		now:      time.Now,
		state:    CircuitStateClosed,
	}
}

func (b *CircuitBreaker) Name() string { return b.name }

// Execute runs fn when the breaker admits the call. Errors for which
// isFailure reports true count against the breaker; a nil isFailure counts
// every error. A rejected call returns an *OpenError.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if !b.cfg.Enabled {
		return fn()
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	b.record(err != nil && (isFailure == nil || isFailure(err)))
	return err
}

// State reports an elapsed open window as half open.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) admit() error {
	b.mu.Lock()
	from := b.state
	if b.state == CircuitStateOpen {
		if wait := b.cfg.OpenTimeout - b.now().Sub(b.openedAt); wait > 0 {
			b.mu.Unlock()
			return &OpenError{Breaker: b.name, RetryIn: wait}
		}
		b.setState(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			b.mu.Unlock()
			b.notify(from, CircuitStateHalfOpen)
			return &OpenError{Breaker: b.name}
		}
		b.inFlight++
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return nil
}

func (b *CircuitBreaker) record(failed bool) {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.setState(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		if failed {
			b.setState(CircuitStateOpen)
			break
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.setState(CircuitStateClosed)
		}
	case CircuitStateOpen:
		// a call admitted before the breaker opened
		if failed {
			b.openedAt = b.now()
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// setState must be called with mu held.
func (b *CircuitBreaker) setState(next CircuitState) {
	b.state = next
	b.inFlight = 0
	b.passed = 0
	switch next {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) notify(from, to CircuitState) {
	if from != to && b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}
