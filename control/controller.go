package control

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Exca-DK/relay-util/events"
	"github.com/Exca-DK/relay-util/log"
	"github.com/Exca-DK/relay-util/metrics"
	"github.com/Exca-DK/relay-util/relay"
	"github.com/Exca-DK/relay-util/utils"
	"github.com/Exca-DK/relay-util/workers/producer"
)

var (
	// ErrAlreadyRunning rejects a start request while a run is active.
	ErrAlreadyRunning = errors.New("run already in progress")
	// ErrClosed rejects start requests after Close.
	ErrClosed = errors.New("controller closed")
)

type Status uint8

const (
	Idle Status = iota
	Running
	Completing
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completing:
		return "completing"
	default:
		return "unknown"
	}
}

type Config[T any] struct {
	// Name identifies the workload in logs and metric labels. Runs get
	// their own ids on top of it.
	Name string

	// Invoker drives the consumer side of every run's channel.
	Invoker relay.Invoker

	// NewSource builds a fresh workload per run.
	NewSource func() producer.Source[T]

	// Prepare is handed to the producer. Optional.
	Prepare producer.PrepareFunc[T]

	QueueDepth  int
	ReportEvery int
}

// Controller serializes runs: at most one producer exists at a time and
// a new start is accepted only once the previous run has fully torn
// down. Each run gets its own channel and handle.
type Controller[T any] struct {
	cfg Config[T]

	mu     sync.Mutex
	status Status
	run    *runHandle[T]
	closed bool

	feed *events.Feed[RunStats]

	recorder ControllerRecorder
	logger   log.Logger

	wg sync.WaitGroup
}

type runHandle[T any] struct {
	id        utils.UUID
	channel   *relay.Channel[T]
	createdAt time.Time
}

func NewController[T any](cfg Config[T]) *Controller[T] {
	if cfg.Invoker == nil {
		panic("control: controller requires an invoker")
	}
	if cfg.NewSource == nil {
		panic("control: controller requires a source factory")
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	var recorder ControllerRecorder
	if metrics.Enabled() {
		recorder = newRecorder()
	} else {
		recorder = noOpRecorder()
	}
	return &Controller[T]{
		cfg:      cfg,
		feed:     events.NewFeed[RunStats](),
		recorder: recorder,
		logger:   log.NewLogger(),
	}
}

// Start spawns a producer bound to a fresh channel delivering to cb.
// Fails with ErrAlreadyRunning unless the controller is idle.
func (c *Controller[T]) Start(cb relay.Callback[T]) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.status != Idle {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	handle := &runHandle[T]{id: utils.NewId(), createdAt: time.Now()}
	handle.channel = relay.NewChannel(c.cfg.Name, c.cfg.Invoker, cb, c.cfg.QueueDepth)
	c.run = handle
	c.status = Running
	// registered under the lock so a racing Close always waits this run out
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Debug("run starting",
		log.NewStringField("name", c.cfg.Name),
		log.NewStringField("run", handle.id.Short()),
	)
	c.recorder.RecordStarted()
	go c.execute(handle)
	return nil
}

func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SubscribeRuns delivers completed run statistics to ch.
func (c *Controller[T]) SubscribeRuns(ch chan RunStats) events.Subscription {
	return c.feed.Subscribe(ch)
}

func (c *Controller[T]) execute(handle *runHandle[T]) {
	defer c.wg.Done()
	worker := producer.New[T](c.cfg.Name, c.cfg.NewSource(), handle.channel, producer.Config[T]{
		ReportEvery: c.cfg.ReportEvery,
		Prepare:     c.cfg.Prepare,
	})
	stats := worker.Run()
	c.complete(handle, stats)
}

// complete performs the teardown of one run. The controller leaves
// Completing only here, so a racing Start stays rejected until the
// handle is gone.
func (c *Controller[T]) complete(handle *runHandle[T], stats producer.RunStats) {
	c.mu.Lock()
	c.status = Completing
	c.mu.Unlock()

	// lifecycle owner reference, the channel fully closes here
	handle.channel.Release()

	result := newRunStats(handle.id, stats)

	c.mu.Lock()
	c.run = nil
	c.status = Idle
	c.mu.Unlock()

	c.recorder.RecordCompleted(result.Err == nil)
	c.logger.Debug("run completed",
		log.NewStringField("run", result.Id.Short()),
		log.NewTField("units", result.Units),
		log.NewTField("sent", result.Sent),
		log.NewDurationField("took", result.FinishedAt.Sub(result.StartedAt)),
		log.NewErrorField(result.Err),
	)
	c.feed.Send(result)
}

// Close rejects further starts, waits for an in-flight run to finish
// naturally and stops the completion feed. A diagnostic is emitted when
// a run was still active at shutdown.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	active := c.status != Idle
	var id string
	if c.run != nil {
		id = c.run.id.Short()
	}
	c.mu.Unlock()

	if active {
		c.logger.Warn("shutdown requested with run still in progress", log.NewStringField("run", id))
	}
	c.wg.Wait()
	c.feed.Stop()
}
