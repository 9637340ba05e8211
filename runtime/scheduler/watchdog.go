package scheduler

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Check once the deadline has passed while
// the watchdog is enabled.
var ErrTimeout = errors.New("scheduler: execution timeout exceeded")

// Watchdog enforces the program-wide execution timeout. It is checked
// at statement and loop boundaries rather than preempting the running
// goroutine, since there is no safe way to forcibly abort interpreted
// code mid-native-call. `main loop` disables it for the duration of
// its body.
type Watchdog struct {
	deadline time.Time
	disabled bool
}

// NewWatchdog arms a deadline timeout from now.
func NewWatchdog(timeout time.Duration) *Watchdog {
	return &Watchdog{deadline: time.Now().Add(timeout)}
}

// Disable turns off deadline checking.
func (w *Watchdog) Disable() { w.disabled = true }

// Enable re-arms deadline checking against the original deadline.
func (w *Watchdog) Enable() { w.disabled = false }

// Check reports ErrTimeout if the deadline has passed and the
// watchdog is currently enabled; nil otherwise.
func (w *Watchdog) Check() error {
	if w.disabled {
		return nil
	}
	if time.Now().After(w.deadline) {
		return ErrTimeout
	}
	return nil
}

// Context derives a context bound to the same deadline, so resource
// operations (file, network, subprocess) fail on their own rather than
// blocking silently past the point Check would next catch them.
func (w *Watchdog) Context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithDeadline(parent, w.deadline)
}
