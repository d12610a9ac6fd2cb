package producer

import (
	"sync"
	"time"

	"github.com/Exca-DK/relay-util/metrics"
)

type ProducerRecorder interface {
	RecordUnit()
	RecordUnitTime(d time.Duration)
	RecordSent()
	RecordSkipped()
}

var (
	_producerType = []string{"producer"}

	_metricsOnce     sync.Once
	_metricsUnits    metrics.Vec[metrics.Counter]
	_metricsSent     metrics.Vec[metrics.Counter]
	_metricsSkipped  metrics.Vec[metrics.Counter]
	_metricsUnitTime metrics.Vec[metrics.Summary]
)

func registerProducerMetrics() {
	_metricsOnce.Do(func() {
		_metricsUnits = metrics.Default.NewCounterVec(metrics.CounterOpts{
			Namespace: "workers",
			Subsystem: "producer",
			Name:      "units",
			Help:      "work units produced",
		}, _producerType)
		_metricsSent = metrics.Default.NewCounterVec(metrics.CounterOpts{
			Namespace: "workers",
			Subsystem: "producer",
			Name:      "sent",
			Help:      "reports handed to the sink",
		}, _producerType)
		_metricsSkipped = metrics.Default.NewCounterVec(metrics.CounterOpts{
			Namespace: "workers",
			Subsystem: "producer",
			Name:      "skipped",
			Help:      "reports dropped on preparation or send failure",
		}, _producerType)
		_metricsUnitTime = metrics.Default.NewSummaryVec(metrics.SummaryOpts{
			Namespace:  "workers",
			Subsystem:  "producer",
			Name:       "unit_time",
			Help:       "time spent producing a single unit",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, _producerType)
	})
}

func newRecorder(id string) ProducerRecorder {
	registerProducerMetrics()
	return &producerRecorder{
		units:    _metricsUnits.WithLabelValues(id),
		sent:     _metricsSent.WithLabelValues(id),
		skipped:  _metricsSkipped.WithLabelValues(id),
		unitTime: _metricsUnitTime.WithLabelValues(id),
	}
}

type producerRecorder struct {
	units    metrics.Counter
	sent     metrics.Counter
	skipped  metrics.Counter
	unitTime metrics.Summary
}

func (r *producerRecorder) RecordUnit()                    { r.units.Inc() }
func (r *producerRecorder) RecordUnitTime(d time.Duration) { r.unitTime.Observe(float64(d)) }
func (r *producerRecorder) RecordSent()                    { r.sent.Inc() }
func (r *producerRecorder) RecordSkipped()                 { r.skipped.Inc() }

func noOpRecorder(id string) ProducerRecorder {
	return noopProducerRecorder{}
}

type noopProducerRecorder struct{}

func (r noopProducerRecorder) RecordUnit()                    {}
func (r noopProducerRecorder) RecordUnitTime(d time.Duration) {}
func (r noopProducerRecorder) RecordSent()                    {}
func (r noopProducerRecorder) RecordSkipped()                 {}
