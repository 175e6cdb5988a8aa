// Package task runs fire-and-forget background work and holds its result
// until it is ready.
package task

import (
	"sync"

	"nerdle/internal/logging"
)

// Spawn runs fn in its own goroutine. A failure is logged and dropped; it is
// never retried. The returned channel closes when fn has finished.
func Spawn(name string, fn func() error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := fn(); err != nil {
			logging.Warn("Task %s failed: %v", name, err)
		}
	}()
	return done
}

// Cell holds a value that becomes available later, from a background task.
type Cell[T any] struct {
	mu    sync.RWMutex
	value T
	ready bool
}

// Set stores v and marks the cell ready. Later calls replace the value.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.ready = true
}

// Get returns the value and whether it has been set.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.ready
}

// Ready reports whether the value has been set.
func (c *Cell[T]) Ready() bool {
	_, ok := c.Get()
	return ok
}
