package relay

import (
	"sync"
	"time"

	"github.com/Exca-DK/relay-util/metrics"
)

type ChannelRecorder interface {
	RecordSent()
	RecordDelivered()
	RecordDiscarded()
	RecordQueued(n int)
	RecordSendWait(d time.Duration)
}

var (
	_channelType = []string{"channel"}

	_metricsOnce      sync.Once
	_metricsSent      metrics.Vec[metrics.Counter]
	_metricsDelivered metrics.Vec[metrics.Counter]
	_metricsDiscarded metrics.Vec[metrics.Counter]
	_metricsDepth     metrics.Vec[metrics.Gauge]
	_metricsSendWait  metrics.Vec[metrics.Summary]
)

// registration is deferred so that channels created after metrics.Enable
// still bind real collectors.
func registerChannelMetrics() {
	_metricsOnce.Do(func() {
		_metricsSent = metrics.Default.NewCounterVec(metrics.CounterOpts{
			Namespace: "relay",
			Subsystem: "channel",
			Name:      "sent",
			Help:      "items accepted from producers",
		}, _channelType)
		_metricsDelivered = metrics.Default.NewCounterVec(metrics.CounterOpts{
			Namespace: "relay",
			Subsystem: "channel",
			Name:      "delivered",
			Help:      "items handed to the consumer callback",
		}, _channelType)
		_metricsDiscarded = metrics.Default.NewCounterVec(metrics.CounterOpts{
			Namespace: "relay",
			Subsystem: "channel",
			Name:      "discarded",
			Help:      "items reclaimed without delivery",
		}, _channelType)
		_metricsDepth = metrics.Default.NewGaugeVec(metrics.GaugeOpts{
			Namespace: "relay",
			Subsystem: "channel",
			Name:      "queue_depth",
			Help:      "pending items after the latest send",
		}, _channelType)
		_metricsSendWait = metrics.Default.NewSummaryVec(metrics.SummaryOpts{
			Namespace:  "relay",
			Subsystem:  "channel",
			Name:       "send_wait",
			Help:       "time producers spent blocked on a queue slot",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, _channelType)
	})
}

func newRecorder(id string) ChannelRecorder {
	registerChannelMetrics()
	return &channelRecorder{
		sent:      _metricsSent.WithLabelValues(id),
		delivered: _metricsDelivered.WithLabelValues(id),
		discarded: _metricsDiscarded.WithLabelValues(id),
		depth:     _metricsDepth.WithLabelValues(id),
		sendWait:  _metricsSendWait.WithLabelValues(id),
	}
}

type channelRecorder struct {
	sent      metrics.Counter
	delivered metrics.Counter
	discarded metrics.Counter
	depth     metrics.Gauge
	sendWait  metrics.Summary
}

func (r *channelRecorder) RecordSent()                    { r.sent.Inc() }
func (r *channelRecorder) RecordDelivered()               { r.delivered.Inc() }
func (r *channelRecorder) RecordDiscarded()               { r.discarded.Inc() }
func (r *channelRecorder) RecordQueued(n int)             { r.depth.Set(float64(n)) }
func (r *channelRecorder) RecordSendWait(d time.Duration) { r.sendWait.Observe(float64(d)) }

func noOpRecorder(id string) ChannelRecorder {
	return noopChannelRecorder{}
}

type noopChannelRecorder struct{}

func (r noopChannelRecorder) RecordSent()                    {}
func (r noopChannelRecorder) RecordDelivered()               {}
func (r noopChannelRecorder) RecordDiscarded()               {}
func (r noopChannelRecorder) RecordQueued(n int)             {}
func (r noopChannelRecorder) RecordSendWait(d time.Duration) {}
