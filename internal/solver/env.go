package solver

import (
	"errors"
	"time"
)

// ErrTimeout is returned by Env.CheckTimeout once the configured duration
// has elapsed since the timer was last reset.
var ErrTimeout = errors.New("solver: timed out")

// Env tracks how long the solver has been working on the current
// difficulty tier, so a compound-invariant search that's taking too long
// can bail out instead of exploring an exponential constraint-merge tree
// forever.
type Env struct {
	start       time.Time
	maxDuration time.Duration
}

// NewEnv builds an Env with its timer starting now.
func NewEnv(maxDuration time.Duration) *Env {
	return &Env{start: time.Now(), maxDuration: maxDuration}
}

// ResetTimer restarts the timeout window from now. Solve calls it before
// each tier-2 search; a tier-3 search that follows shares that window.
func (e *Env) ResetTimer() {
	e.start = time.Now()
}

// CheckTimeout returns ErrTimeout once the window has elapsed.
func (e *Env) CheckTimeout() error {
	if time.Since(e.start) >= e.maxDuration {
		return ErrTimeout
	}
	return nil
}
