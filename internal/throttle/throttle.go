// Package throttle rate-limits a function to at most one call per time
// window, with a trailing call for anything that arrived inside the window.
package throttle

import (
	"sync"
	"time"
)

// Clock is the time source used by Func. Tests swap it for a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the part of *time.Timer that Func needs.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configures a Func.
type Option func(*Func)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(t *Func) { t.clock = c }
}

// Func wraps fn so that it runs at most once per wait. The first call in an
// idle period runs immediately. Calls arriving while the window is open are
// coalesced into a single trailing call at the end of the window.
//
// fn always runs outside the internal lock, either on the caller's goroutine
// (leading edge, Flush) or on a timer goroutine (trailing edge).
type Func struct {
	fn    func()
	wait  time.Duration
	clock Clock

	mu      sync.Mutex
	last    time.Time
	timer   Timer
	pending bool
	gen     uint64
}

// New returns a throttled wrapper around fn.
func New(fn func(), wait time.Duration, opts ...Option) *Func {
	t := &Func{fn: fn, wait: wait, clock: realClock{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PerSecond returns the window that allows n calls per second.
func PerSecond(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Second / time.Duration(n)
}

// Call requests an invocation of the wrapped function.
func (t *Func) Call() {
	t.mu.Lock()
	now := t.clock.Now()
	if t.timer == nil && (t.last.IsZero() || now.Sub(t.last) >= t.wait) {
		t.last = now
		t.mu.Unlock()
		t.fn()
		return
	}

	t.pending = true
	if t.timer == nil {
		gen := t.gen
		t.timer = t.clock.AfterFunc(t.last.Add(t.wait).Sub(now), func() { t.fire(gen) })
	}
	t.mu.Unlock()
}

func (t *Func) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		// cancelled or flushed after the timer was armed
		t.mu.Unlock()
		return
	}
	t.timer = nil
	if !t.pending {
		t.mu.Unlock()
		return
	}
	t.pending = false
	t.last = t.clock.Now()
	t.mu.Unlock()
	t.fn()
}

// Cancel drops any pending trailing call and resets the window, so the next
// Call runs immediately.
func (t *Func) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	t.last = time.Time{}
}

// Flush runs a pending trailing call now instead of waiting for the window
// to close. It reports whether anything ran.
func (t *Func) Flush() bool {
	t.mu.Lock()
	if !t.pending {
		t.mu.Unlock()
		return false
	}
	t.resetLocked()
	t.last = t.clock.Now()
	t.mu.Unlock()
	t.fn()
	return true
}

// Pending reports whether a trailing call is scheduled.
func (t *Func) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

func (t *Func) resetLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
}
