package core

// load_limiter.go bounds how many full-table loads run at once. Every grid
// query reads a whole table into memory, so a burst of requests could
// otherwise hold every pool connection and a lot of heap. Requests that
// cannot get a slot within maxWait fail with ErrTooManyLoads.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"golang.org/x/sync/semaphore"
)

// ErrTooManyLoads is returned when no load slot frees up in time.
var ErrTooManyLoads = errors.New("too many concurrent table loads, please try again later")

const (
	// DefaultMaxConcurrentLoads is the default limit for parallel loads.
	DefaultMaxConcurrentLoads = 8

	// DefaultLoadWaitTime is how long to wait for a slot before rejecting.
	DefaultLoadWaitTime = 10 * time.Second
)

// LoadLimiter is a weighted semaphore with a bounded wait.
type LoadLimiter struct {
	sem     *semaphore.Weighted
	max     int
	maxWait time.Duration
	active  atomic.Int64
}

// NewLoadLimiter allows at most maxConcurrent loads at once.
func NewLoadLimiter(maxConcurrent int, maxWait time.Duration) *LoadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentLoads
	}
	if maxWait <= 0 {
		maxWait = DefaultLoadWaitTime
	}
	return &LoadLimiter{
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		max:     maxConcurrent,
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. The caller must Release after a nil return.
func (l *LoadLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyLoads
	}
	l.active.Add(1)
	return nil
}

// TryAcquire takes a slot without waiting.
func (l *LoadLimiter) TryAcquire() bool {
	if !l.sem.TryAcquire(1) {
		return false
	}
	l.active.Add(1)
	return true
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *LoadLimiter) Release() {
	l.active.Add(-1)
	l.sem.Release(1)
}

// LoadLimiterStatus is a snapshot for health output.
type LoadLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *LoadLimiter) Status() LoadLimiterStatus {
	active := int(l.active.Load())
	return LoadLimiterStatus{
		Active:        active,
		Available:     l.max - active,
		MaxConcurrent: l.max,
	}
}

// limited wraps load so it runs under the limiter.
func (l *LoadLimiter) limited(load func(context.Context, TableDefinition) ([]grid.Map, error)) func(context.Context, TableDefinition) ([]grid.Map, error) {
	return func(ctx context.Context, def TableDefinition) ([]grid.Map, error) {
		if err := l.Acquire(ctx); err != nil {
			return nil, err
		}
		defer l.Release()
		return load(ctx, def)
	}
}
