// Package circuitbreaker guards calls to external services with github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/joefazee/atlas/internal/logger"
	"github.com/sony/gobreaker"
)

// ErrOpen is returned without calling through while the circuit is open
// or the half-open probe budget is used up.
var ErrOpen = errors.New("circuit breaker is open")

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name is the circuit breaker name for logging and metrics
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open state
	MaxRequests uint32

	// Interval is the cyclic period of the closed state to clear success/failure counts
	Interval time.Duration

	// Timeout is how long to wait in open state before trying again
	Timeout time.Duration

	// FailureThreshold is the failure ratio threshold to trip the circuit.
	// 0.6 means 60% failure rate
	FailureThreshold float64

	// MinRequests is the minimum number of requests before calculating failure ratio
	MinRequests uint32
}

// DefaultConfig returns a default configuration for circuit breakers.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// CountriesSourceConfig is tuned for the single, large countries download.
// Fetches are rare so the circuit trips after a few consecutive failures.
func CountriesSourceConfig() Config {
	return Config{
		Name:             "countries-source",
		MaxRequests:      1,
		Interval:         5 * time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

// StateListener is notified after every state transition.
type StateListener func(name string, from, to gobreaker.State)

// CircuitBreaker wraps gobreaker.CircuitBreaker with logging.
type CircuitBreaker struct {
	mu       sync.RWMutex
	breaker  *gobreaker.CircuitBreaker
	settings gobreaker.Settings
	name     string
}

// New creates a new circuit breaker with the given configuration.
func New(cfg Config, log logger.Logger, listeners ...StateListener) *CircuitBreaker {
	if log == nil {
		log = logger.NewNullLogger()
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		// a caller giving up is not a fault of the remote side
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed", map[string]interface{}{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			for _, l := range listeners {
				l(name, from, to)
			}
		},
	}

	return &CircuitBreaker{
		breaker:  gobreaker.NewCircuitBreaker(settings),
		settings: settings,
		name:     cfg.Name,
	}
}

func (cb *CircuitBreaker) current() *gobreaker.CircuitBreaker {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.breaker
}

// Reset closes the circuit and clears its counts. Calls already running
// finish against the previous state.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	from := cb.breaker.State()
	cb.breaker = gobreaker.NewCircuitBreaker(cb.settings)
	cb.mu.Unlock()

	if from != gobreaker.StateClosed {
		cb.settings.OnStateChange(cb.name, from, gobreaker.StateClosed)
	}
}

// Execute runs fn through the circuit breaker. If the circuit is open it
// returns an error wrapping ErrOpen without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cb.current().Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(ErrOpen, err)
	}
	return result, err
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.current().State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.current().State() == gobreaker.StateOpen
}
