package relay

import (
	"sync"
	"time"

	"github.com/Exca-DK/relay-util/log"
	"github.com/Exca-DK/relay-util/metrics"
)

const DefaultQueueDepth = 64

// Callback receives one delivered item on the consumer context.
type Callback[T any] func(T)

type channelState uint8

const (
	stateOpen channelState = iota
	stateClosing
	stateClosed
)

// Channel is an ordered, bounded handoff between producer goroutines and
// a single consumer context. Lifetime is reference counted: the creator
// holds one reference, every producer acquires its own and the channel
// fully closes when the count reaches zero. Items stranded in the queue
// at that point are discarded, never delivered and never leaked.
type Channel[T any] struct {
	invoker Invoker
	cb      Callback[T]

	pending chan T
	done    chan struct{}

	mu    sync.Mutex
	refs  int
	state channelState

	recorder ChannelRecorder
	logger   log.Logger
}

// NewChannel builds a channel delivering to cb through invoker. The
// callback identity is fixed for the channel's whole life. The returned
// channel carries one reference owned by the caller.
func NewChannel[T any](id string, invoker Invoker, cb Callback[T], depth int) *Channel[T] {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	var recorder ChannelRecorder
	if metrics.Enabled() {
		recorder = newRecorder(id)
	} else {
		recorder = noOpRecorder(id)
	}
	return &Channel[T]{
		invoker:  invoker,
		cb:       cb,
		pending:  make(chan T, depth),
		done:     make(chan struct{}),
		refs:     1,
		recorder: recorder,
		logger:   log.NewLoggerWithId(id),
	}
}

// Acquire registers one more user of the channel. Every successful
// acquire must be paired with exactly one Release.
func (c *Channel[T]) Acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == stateClosed {
		return ErrChannelClosed
	}
	c.refs++
	return nil
}

// Release drops one reference. The final release transitions the channel
// to closed and frees whatever is still queued.
func (c *Channel[T]) Release() {
	c.mu.Lock()
	if c.refs <= 0 {
		c.mu.Unlock()
		panic("relay: channel release without matching acquire")
	}
	c.refs--
	last := c.refs == 0
	if last {
		c.state = stateClosed
		close(c.done)
	} else if c.state == stateOpen {
		c.state = stateClosing
	}
	c.mu.Unlock()
	if last {
		// Deliveries already scheduled must finish first, so the flush
		// queues behind them on the consumer context. A torn-down
		// consumer reclaims inline instead.
		if !c.invoker.Invoke(c.flush) {
			c.flush()
		}
	}
}

// Send enqueues item for the consumer, blocking while the queue is full.
// Items from one producer are delivered in send order. Once the consumer
// context has torn down the item is silently discarded; Send keeps
// reporting success so a finishing producer is not disturbed.
func (c *Channel[T]) Send(item T) error {
	// full close wins over a torn-down consumer
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	start := time.Now()
	select {
	case <-c.done:
		return ErrChannelClosed
	case <-c.invoker.Done():
		c.recorder.RecordDiscarded()
		return nil
	case c.pending <- item:
	}
	c.recorder.RecordSendWait(time.Since(start))
	c.recorder.RecordQueued(len(c.pending))
	c.dispatch()
	return nil
}

// TrySend is the non-blocking variant of Send.
func (c *Channel[T]) TrySend(item T) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	select {
	case <-c.invoker.Done():
		c.recorder.RecordDiscarded()
		return nil
	default:
	}
	select {
	case c.pending <- item:
	default:
		return ErrQueueFull
	}
	c.recorder.RecordQueued(len(c.pending))
	c.dispatch()
	return nil
}

// Closed reports whether the final release already happened.
func (c *Channel[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateClosed
}

// dispatch schedules delivery of one queued item. If the consumer
// context refuses (torn down), the item is reclaimed here instead.
func (c *Channel[T]) dispatch() {
	c.recorder.RecordSent()
	if !c.invoker.Invoke(c.drainOne) {
		c.discardOne()
	}
}

// drainOne runs on the consumer context, one invocation per accepted
// send, delivering the oldest queued item to the callback.
func (c *Channel[T]) drainOne() {
	select {
	case item := <-c.pending:
		c.cb(item)
		c.recorder.RecordDelivered()
	default:
	}
}

func (c *Channel[T]) discardOne() {
	select {
	case <-c.pending:
		c.recorder.RecordDiscarded()
	default:
	}
}

// flush reclaims items stranded by teardown.
func (c *Channel[T]) flush() {
	var n int
	for {
		select {
		case <-c.pending:
			c.recorder.RecordDiscarded()
			n++
		default:
			if n > 0 {
				c.logger.Debug("discarded undelivered items at close", log.NewTField("amount", n))
			}
			return
		}
	}
}
