package retrier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// ExponentialBackoff doubles (by Factor) the delay after each attempt.
// LinearBackoff grows the delay by BaseDelay after each attempt.
const (
	ExponentialBackoff BackoffStrategy = iota
	LinearBackoff
)

var (
	// ErrInvalidMaxAttempts is returned when the max attempts parameter is invalid.
	ErrInvalidMaxAttempts = errors.New("max attempts must be at least 1")
	// ErrInvalidBaseDelay is returned when the base delay parameter is invalid.
	ErrInvalidBaseDelay = errors.New("base delay must be at least 1ms")
	// ErrInvalidFactor is returned when the factor parameter is invalid.
	ErrInvalidFactor = errors.New("factor must be at least 1.0")
	// ErrInvalidJitter is returned when the jitter parameter is invalid.
	ErrInvalidJitter = errors.New("jitter must be between 0 and 1")
)

// BackoffStrategy selects how delays grow between attempts.
type BackoffStrategy int

// Settings configures a Retrier.
type Settings struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Factor      float64
	Jitter      float64
	Strategy    BackoffStrategy
	// Retryable decides whether an error is worth another attempt. Defaults to IsTemporary.
	Retryable func(error) bool
}

// DefaultSettings suits short remote cache calls on the request path.
func DefaultSettings() Settings {
	return Settings{
		MaxAttempts: 3,
		BaseDelay:   20 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
		Factor:      2,
		Jitter:      0.1,
		Strategy:    ExponentialBackoff,
	}
}

// Retrier runs a function until it succeeds, fails permanently, or runs out of attempts.
type Retrier struct {
	settings Settings
}

// New validates settings and builds a Retrier.
func New(s Settings) (*Retrier, error) {
	if s.MaxAttempts < 1 {
		return nil, ErrInvalidMaxAttempts
	}
	if s.BaseDelay < time.Millisecond {
		return nil, ErrInvalidBaseDelay
	}
	if s.Factor < 1.0 {
		return nil, ErrInvalidFactor
	}
	if s.Jitter < 0 || s.Jitter > 1 {
		return nil, ErrInvalidJitter
	}
	if s.MaxDelay < s.BaseDelay {
		s.MaxDelay = s.BaseDelay
	}
	if s.Retryable == nil {
		s.Retryable = IsTemporary
	}
	return &Retrier{settings: s}, nil
}

// Run executes fn with retries. Context cancellation stops waiting between attempts.
func (r *Retrier) Run(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < r.settings.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !r.settings.Retryable(err) {
			return err
		}
		if attempt == r.settings.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(r.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("max retry attempts reached: %w", err)
}

// Delay returns the wait before the attempt following the given zero-based attempt.
func (r *Retrier) Delay(attempt int) time.Duration {
	var delay float64
	switch r.settings.Strategy {
	case LinearBackoff:
		delay = float64(r.settings.BaseDelay) * float64(attempt+1)
	default:
		delay = float64(r.settings.BaseDelay) * math.Pow(r.settings.Factor, float64(attempt))
	}

	if delay > float64(r.settings.MaxDelay) {
		delay = float64(r.settings.MaxDelay)
	}
	delay += rand.Float64() * r.settings.Jitter * delay

	return time.Duration(delay)
}
