// Package currency holds the counter shown on the Currency screen.
package currency

import "sync"

const DefaultStep = 1

// Counter is an integer balance changed in fixed steps. It may go negative.
type Counter struct {
	mu        sync.Mutex
	value     int
	step      int
	listeners []func(int)
}

func NewCounter(step int) *Counter {
	if step <= 0 {
		step = DefaultStep
	}
	return &Counter{step: step}
}

func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *Counter) Step() int {
	return c.step
}

func (c *Counter) Increase() int {
	return c.add(c.step)
}

func (c *Counter) Decrease() int {
	return c.add(-c.step)
}

func (c *Counter) Reset() {
	c.set(0)
}

// OnChange registers fn to receive every new value.
func (c *Counter) OnChange(fn func(int)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Counter) add(delta int) int {
	c.mu.Lock()
	c.value += delta
	v := c.value
	listeners := append([]func(int){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
	return v
}

func (c *Counter) set(v int) {
	c.mu.Lock()
	c.value = v
	listeners := append([]func(int){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}
