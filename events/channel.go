package events

import (
	"sync/atomic"
	"time"
)

type wrappedChan[T any] struct {
	ch    chan<- T
	tasks atomic.Int32
	done  atomic.Bool
}

func (c *wrappedChan[T]) Send(data T) {
	if c.done.Load() {
		return
	}
	c.tasks.Add(1)
	defer c.tasks.Add(-1)
	c.ch <- data
}

// Close waits out senders already inside Send before closing the
// underlying channel. New sends are rejected by the done flag.
func (c *wrappedChan[T]) Close() {
	if !c.done.CompareAndSwap(false, true) {
		return
	}

	for c.tasks.Load() > 0 {
		time.Sleep(10 * time.Millisecond)
	}
	close(c.ch)
}
