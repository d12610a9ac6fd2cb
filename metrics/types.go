package metrics

import "github.com/prometheus/client_golang/prometheus"

type SummaryOpts prometheus.SummaryOpts
type CounterOpts prometheus.CounterOpts
type GaugeOpts prometheus.GaugeOpts
type HistogramOpts prometheus.HistogramOpts

type Vec[T any] interface {
	WithLabelValues(lvs ...string) T
}

type Counter interface {
	Inc()
	Add(float64)
}

type noopCounter struct{}

func (counter noopCounter) Inc()                                   {}
func (counter noopCounter) Add(float64)                            {}
func (counter noopCounter) WithLabelValues(lvls ...string) Counter { return noopCounter{} }

type counterVec struct {
	v *prometheus.CounterVec
}

func (c counterVec) WithLabelValues(lvls ...string) Counter {
	return c.v.WithLabelValues(lvls...)
}

type Gauge interface {
	Set(float64)
	Inc()
	Dec()
	Add(float64)
	Sub(float64)
}

type noopGauge struct{}

func (gauge noopGauge) Set(float64)                          {}
func (gauge noopGauge) Inc()                                 {}
func (gauge noopGauge) Dec()                                 {}
func (gauge noopGauge) Add(float64)                          {}
func (gauge noopGauge) Sub(float64)                          {}
func (gauge noopGauge) WithLabelValues(lvls ...string) Gauge { return noopGauge{} }

type gaugeVec struct {
	v *prometheus.GaugeVec
}

func (c gaugeVec) WithLabelValues(lvls ...string) Gauge {
	return c.v.WithLabelValues(lvls...)
}

type Histogram interface {
	Observe(float64)
}

type noopHistogram struct{}

func (hist noopHistogram) Observe(float64)                          {}
func (hist noopHistogram) WithLabelValues(lvls ...string) Histogram { return noopHistogram{} }

type histogramVec struct {
	v *prometheus.HistogramVec
}

func (c histogramVec) WithLabelValues(lvls ...string) Histogram {
	return c.v.WithLabelValues(lvls...)
}

type Summary interface {
	Observe(float64)
}

type noopSummary struct{}

func (summary noopSummary) Observe(float64)                        {}
func (summary noopSummary) WithLabelValues(lvls ...string) Summary { return noopSummary{} }

type summaryVec struct {
	v *prometheus.SummaryVec
}

func (c summaryVec) WithLabelValues(lvls ...string) Summary {
	return c.v.WithLabelValues(lvls...)
}
