package interrupt

import "sync/atomic"

// Counter tracks nested interrupt-handler activations. The zero value is
// ready to use: zero means no handler is executing.
type Counter struct {
	n atomic.Int32
}

// Start must be called at the beginning of every interrupt handler,
// including nested ones.
func (c *Counter) Start() {
	c.n.Add(1)
}

// End must be called at the end of every interrupt handler.
func (c *Counter) End() {
	c.n.Add(-1)
}

// Active reports whether any interrupt handler is currently executing.
func (c *Counter) Active() bool {
	return c.n.Load() > 0
}

// Depth returns the current nesting depth, for diagnostics.
func (c *Counter) Depth() int32 {
	return c.n.Load()
}
