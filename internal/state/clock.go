package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock is a Lamport clock. The zero value starts at 0.
type Clock struct {
	counter atomic.Uint64
}

// Tick advances the clock for a local event and returns the new time.
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Observe moves the clock forward to at least ts after seeing a remote
// event stamped ts.
func (c *Clock) Observe(ts uint64) {
	for {
		cur := c.counter.Load()
		if ts <= cur || c.counter.CompareAndSwap(cur, ts) {
			return
		}
	}
}

// Now returns the current time without advancing it.
func (c *Clock) Now() uint64 {
	return c.counter.Load()
}

// NewSiteID returns a random identifier for this board session.
func NewSiteID() string {
	return uuid.NewString()
}
