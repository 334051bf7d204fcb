// Package resilience guards calls to remote dependencies: the archive fetchers used by restore.
package resilience

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrCircuitOpen = crerr.New("circuit breaker is open")

type CircuitState uint8

const (
	CircuitStateClosed CircuitState = iota
	CircuitStateHalfOpen
	CircuitStateOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitStateClosed:
		return "closed"
	case CircuitStateHalfOpen:
		return "half_open"
	case CircuitStateOpen:
		return "open"
	}
	return "unknown"
}

// CircuitBreakerConfig mirrors the ARCHIVE_CIRCUIT_* settings. Zero values take the defaults.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	// OnStateChange, if set, is called after every transition, outside the breaker's lock.
	OnStateChange func(name string, from, to CircuitState)
}

func (cfg CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 20 * time.Second
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = 2
	}
	return cfg
}

// CircuitBreaker opens after FailureThreshold consecutive failures. Once OpenTimeout has passed it
// admits up to HalfOpenMaxReq probes; all of them must succeed to close it again.
// Each transition starts a new generation, and outcomes of calls admitted in an older one are dropped.
// A nil *CircuitBreaker admits everything.
type CircuitBreaker struct {
	name  string
	cfg   CircuitBreakerConfig
	clock func() time.Time

	mu         sync.Mutex
	state      CircuitState
	generation uint64
	since      time.Time
	failures   int
	probes     int
	passed     int
}

type outcome uint8

const (
	succeeded outcome = iota
	failed
	abandoned
)

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return &CircuitBreaker{name: name, cfg: cfg.withDefaults(), clock: time.Now}
}

// Run calls fn unless the breaker refuses, and feeds the outcome back.
// An error caused by ctx ending is the caller's decision and never counts as a failure.
func (b *CircuitBreaker) Run(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	gen, err := b.admit()
	if err != nil {
		return err
	}

	err = fn(ctx)
	result := succeeded
	if err != nil {
		result = failed
		if ctxErr := ctx.Err(); ctxErr != nil && crerr.Is(err, ctxErr) {
			result = abandoned
		}
	}
	b.settle(gen, result)
	return err
}

// State reports an open breaker whose timeout has passed as half open, which is what the next call sees.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitStateOpen && b.cooled(b.clock()) {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) cooled(now time.Time) bool {
	return now.Sub(b.since) >= b.cfg.OpenTimeout
}

func (b *CircuitBreaker) admit() (uint64, error) {
	b.mu.Lock()
	notify := func() {}
	defer func() {
		b.mu.Unlock()
		notify()
	}()

	now := b.clock()
	if b.state == CircuitStateOpen && b.cooled(now) {
		notify = b.shift(CircuitStateHalfOpen, now)
	}
	switch b.state {
	case CircuitStateOpen:
		return 0, crerr.Wrapf(ErrCircuitOpen, "%s", b.name)
	case CircuitStateHalfOpen:
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return 0, crerr.Wrapf(ErrCircuitOpen, "%s: probes in flight", b.name)
		}
		b.probes++
	}
	return b.generation, nil
}

func (b *CircuitBreaker) settle(gen uint64, result outcome) {
	b.mu.Lock()
	notify := func() {}
	defer func() {
		b.mu.Unlock()
		notify()
	}()

	if gen != b.generation {
		return
	}
	now := b.clock()
	switch b.state {
	case CircuitStateClosed:
		switch result {
		case succeeded:
			b.failures = 0
		case failed:
			if b.failures++; b.failures >= b.cfg.FailureThreshold {
				notify = b.shift(CircuitStateOpen, now)
			}
		}
	case CircuitStateHalfOpen:
		b.probes--
		switch result {
		case failed:
			notify = b.shift(CircuitStateOpen, now)
		case succeeded:
			if b.passed++; b.passed >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
				notify = b.shift(CircuitStateClosed, now)
			}
		}
	}
}

// shift moves to state and returns the hook call for the caller to run once unlocked.
func (b *CircuitBreaker) shift(to CircuitState, now time.Time) func() {
	from := b.state
	b.state = to
	b.generation++
	b.since = now
	b.failures, b.probes, b.passed = 0, 0, 0

	hook := b.cfg.OnStateChange
	if hook == nil {
		return func() {}
	}
	name := b.name
	return func() { hook(name, from, to) }
}
