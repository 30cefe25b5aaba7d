package sim

import "fmt"

// Countdown counts ticks down to a one-shot event. The zero value is unset.
//
// Advance on an unset countdown does nothing, so the owner can advance every
// countdown it holds each tick without tracking which one is live. When a
// running countdown reaches zero, Advance reports it exactly once and the
// countdown becomes unset again.
type Countdown struct {
	remaining int
	running   bool
}

// Start arms the countdown to fire after ticks calls to Advance.
func (c *Countdown) Start(ticks int) {
	if ticks <= 0 {
		panic(fmt.Errorf("%w: countdown must start above zero, got %d", ErrInvalidState, ticks))
	}
	c.remaining = ticks
	c.running = true
}

// Advance moves the countdown one tick and reports whether it just fired.
func (c *Countdown) Advance() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.running = false
	return true
}

// Running reports whether the countdown is armed.
func (c *Countdown) Running() bool {
	return c.running
}

// Remaining returns the ticks left and whether the countdown is set at all.
func (c *Countdown) Remaining() (int, bool) {
	return c.remaining, c.running
}

// Reset unsets the countdown without firing.
func (c *Countdown) Reset() {
	c.remaining = 0
	c.running = false
}
