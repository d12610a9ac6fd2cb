package relay

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/Exca-DK/relay-util/log"
)

// Loop is a single-goroutine consumer context. Scheduled functions run
// one at a time, in schedule order. It satisfies Invoker.
type Loop struct {
	fns  chan func()
	done chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	limiter *rate.Limiter
	stopped atomic.Bool

	logger log.Logger

	wg sync.WaitGroup
}

type LoopOption func(*Loop)

// WithRateLimit throttles dispatch of scheduled functions. Producers
// blocked on a full queue inherit the throttle as back-pressure.
func WithRateLimit(limit rate.Limit, burst int) LoopOption {
	return func(l *Loop) { l.limiter = rate.NewLimiter(limit, burst) }
}

func NewLoop(backlog int, opts ...LoopOption) *Loop {
	if backlog <= 0 {
		backlog = DefaultQueueDepth
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		fns:    make(chan func(), backlog),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		logger: log.NewLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Start() {
	l.wg.Add(1)
	go l.run()
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.fns:
			// teardown wins over a simultaneously ready function
			select {
			case <-l.done:
				return
			default:
			}
			if l.limiter != nil {
				if err := l.limiter.Wait(l.ctx); err != nil {
					return
				}
			}
			fn()
		}
	}
}

// Invoke schedules fn for execution. Blocks while the backlog is full,
// returns false once the loop has stopped.
func (l *Loop) Invoke(fn func()) bool {
	// teardown wins over a free backlog slot
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case <-l.done:
		return false
	case l.fns <- fn:
		return true
	}
}

func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Stop tears the consumer context down. Functions still queued are
// never executed, their owners observe Done and reclaim the payloads.
func (l *Loop) Stop() {
	if !l.stopped.CompareAndSwap(false, true) {
		return
	}
	close(l.done)
	l.cancel()
	l.wg.Wait()
	l.logger.Debug("consumer loop stopped", log.NewTField("backlog", len(l.fns)))
}
