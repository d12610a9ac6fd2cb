package control

import (
	"sync"

	"github.com/Exca-DK/relay-util/metrics"
)

type ControllerRecorder interface {
	RecordStarted()
	RecordCompleted(ok bool)
}

var (
	_resultType = []string{"result"}

	_metricsOnce      sync.Once
	_metricsStarted   metrics.Counter
	_metricsActive    metrics.Gauge
	_metricsCompleted metrics.Vec[metrics.Counter]
)

func registerControllerMetrics() {
	_metricsOnce.Do(func() {
		_metricsStarted = metrics.Default.NewCounter(metrics.CounterOpts{
			Namespace: "control",
			Subsystem: "runs",
			Name:      "started",
			Help:      "runs accepted by the controller",
		})
		_metricsActive = metrics.Default.NewGauge(metrics.GaugeOpts{
			Namespace: "control",
			Subsystem: "runs",
			Name:      "active",
			Help:      "runs currently in flight",
		})
		_metricsCompleted = metrics.Default.NewCounterVec(metrics.CounterOpts{
			Namespace: "control",
			Subsystem: "runs",
			Name:      "completed",
			Help:      "runs finished, labeled by result",
		}, _resultType)
	})
}

func newRecorder() ControllerRecorder {
	registerControllerMetrics()
	return &controllerRecorder{
		started:   _metricsStarted,
		active:    _metricsActive,
		completed: _metricsCompleted,
	}
}

type controllerRecorder struct {
	started   metrics.Counter
	active    metrics.Gauge
	completed metrics.Vec[metrics.Counter]
}

func (r *controllerRecorder) RecordStarted() {
	r.started.Inc()
	r.active.Inc()
}

func (r *controllerRecorder) RecordCompleted(ok bool) {
	r.active.Dec()
	if ok {
		r.completed.WithLabelValues("success").Inc()
	} else {
		r.completed.WithLabelValues("failure").Inc()
	}
}

func noOpRecorder() ControllerRecorder {
	return noopControllerRecorder{}
}

type noopControllerRecorder struct{}

func (r noopControllerRecorder) RecordStarted()          {}
func (r noopControllerRecorder) RecordCompleted(ok bool) {}
