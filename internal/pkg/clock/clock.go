// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/rpg-initiative/internal/pkg/clock Clock,Ticker

// Clock provides time functionality
type Clock interface {
	Now() time.Time

	// NewTicker returns a ticker delivering ticks every d
	NewTicker(d time.Duration) Ticker
}

// Ticker is the subset of time.Ticker the round clock needs
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker
func (c *Real) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) Chan() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}
