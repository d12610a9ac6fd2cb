package producer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Exca-DK/relay-util/log"
	"github.com/Exca-DK/relay-util/metrics"
)

const DefaultReportEvery = 1000

type Config[T any] struct {
	// ReportEvery is the cadence at which produced units are handed to
	// the sink: the unit whose zero-based index is a positive multiple
	// of ReportEvery gets sent.
	ReportEvery int

	// Prepare, when set, finalizes each reported unit. Optional.
	Prepare PrepareFunc[T]
}

func New[T any](id string, src Source[T], sink Sink[T], cfg Config[T]) *Producer[T] {
	every := cfg.ReportEvery
	if every <= 0 {
		every = DefaultReportEvery
	}
	prepare := cfg.Prepare
	if prepare == nil {
		prepare = func(v T) (T, error) { return v, nil }
	}
	var recorder ProducerRecorder
	if metrics.Enabled() {
		recorder = newRecorder(id)
	} else {
		recorder = noOpRecorder(id)
	}
	return &Producer[T]{
		id:        id,
		src:       src,
		sink:      sink,
		every:     every,
		prepare:   prepare,
		recorder:  recorder,
		logger:    log.NewLoggerWithId(id),
		createdAt: time.Now(),
	}
}

// Producer drives one run of a workload, pushing periodic results into
// the sink. It owns no synchronization beyond acquiring the sink once
// at entry and releasing it exactly once on every exit path.
type Producer[T any] struct {
	id      string
	src     Source[T]
	sink    Sink[T]
	every   int
	prepare PrepareFunc[T]

	recorder ProducerRecorder
	logger   log.Logger

	createdAt time.Time
}

// Run executes the workload on the calling goroutine until the source
// is exhausted.
func (p *Producer[T]) Run() RunStats {
	stats := RunStats{CreatedAt: p.createdAt, StartedAt: time.Now()}
	if err := p.sink.Acquire(); err != nil {
		stats.Err = errors.Wrap(err, "sink unavailable")
		stats.FinishedAt = time.Now()
		return stats
	}
	defer p.sink.Release()

	p.logger.Debug("producer spinning up",
		log.NewStringField("name", p.id),
		log.NewTField("reportEvery", p.every),
	)
	p.produce(&stats)
	stats.FinishedAt = time.Now()
	p.logger.Debug("producer spinned down",
		log.NewStringField("name", p.id),
		log.NewTField("units", stats.Units),
		log.NewTField("sent", stats.Sent),
		log.NewErrorField(stats.Err),
	)
	return stats
}

func (p *Producer[T]) produce(stats *RunStats) {
	for {
		ts := time.Now()
		unit := p.src.Next()
		if p.src.Stopped() {
			return
		}
		p.recorder.RecordUnit()
		p.recorder.RecordUnitTime(time.Since(ts))
		if stats.Units > 0 && stats.Units%p.every == 0 {
			p.report(unit, stats)
		}
		stats.Units++
	}
}

func (p *Producer[T]) report(unit T, stats *RunStats) {
	item, err := p.prepare(unit)
	if err != nil {
		// only this report is lost, the run goes on
		stats.Skipped++
		p.recorder.RecordSkipped()
		p.logger.Warn("item preparation failed, report skipped", log.NewErrorField(err))
		return
	}
	if err := p.sink.Send(item); err != nil {
		stats.Skipped++
		p.recorder.RecordSkipped()
		p.logger.Error("sink rejected report", log.NewErrorField(err))
		return
	}
	stats.Sent++
	p.recorder.RecordSent()
}
