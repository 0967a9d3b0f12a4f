// Package metrics exposes the node's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tessera"

// Metrics holds every collector the node reports. A nil *Metrics records nothing, so
// components can run without metrics in tests.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec

	CommitLogAppendsTotal   prometheus.Counter
	CommitLogAppendDuration prometheus.Histogram
	CommitLogReplayed       prometheus.Counter

	ReaperRunsTotal   *prometheus.CounterVec
	ReaperPurgedTotal prometheus.Counter

	CDCEventsTotal  prometheus.Counter
	CDCDroppedTotal prometheus.Counter
	CDCSubscribers  prometheus.Gauge
}

// New registers the collectors in a fresh registry labelled with nodeID.
func New(nodeID string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	labels := prometheus.Labels{"node_id": nodeID}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "operations",
			Name:        "requests_total",
			Help:        "Total number of requests by operation",
			ConstLabels: labels,
		}, []string{"operation"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "operations",
			Name:        "request_duration_seconds",
			Help:        "Histogram of request durations by operation",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "operations",
			Name:        "errors_total",
			Help:        "Total number of failed requests by operation and kind",
			ConstLabels: labels,
		}, []string{"operation", "kind"}),

		CommitLogAppendsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "commitlog",
			Name:        "appends_total",
			Help:        "Total number of commit log appends",
			ConstLabels: labels,
		}),
		CommitLogAppendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "commitlog",
			Name:        "append_duration_seconds",
			Help:        "Histogram of commit log append durations",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
		CommitLogReplayed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "commitlog",
			Name:        "replayed_total",
			Help:        "Total number of commit log records replayed at start-up",
			ConstLabels: labels,
		}),

		ReaperRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "reaper",
			Name:        "runs_total",
			Help:        "Total number of reaper runs by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		ReaperPurgedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "reaper",
			Name:        "purged_total",
			Help:        "Total number of expired columns and tombstones purged",
			ConstLabels: labels,
		}),

		CDCEventsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cdc",
			Name:        "events_total",
			Help:        "Total number of change events emitted",
			ConstLabels: labels,
		}),
		CDCDroppedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cdc",
			Name:        "dropped_total",
			Help:        "Total number of change events dropped because the buffer was full",
			ConstLabels: labels,
		}),
		CDCSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "cdc",
			Name:        "subscribers",
			Help:        "Current number of change stream subscribers",
			ConstLabels: labels,
		}),
	}
}

// Registry is the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterRowGauge reports the row count of the store on every scrape.
func (m *Metrics) RegisterRowGauge(rows func() int) {
	if m == nil {
		return
	}
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "rows",
		Help:      "Current number of rows held in memory",
	}, func() float64 {
		return float64(rows())
	})
}

// RecordRequest records one finished request.
func (m *Metrics) RecordRequest(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError counts a failed request.
func (m *Metrics) RecordError(operation, kind string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(operation, kind).Inc()
}

// RecordCommitLogAppend records a commit log append
func (m *Metrics) RecordCommitLogAppend(seconds float64) {
	if m == nil {
		return
	}
	m.CommitLogAppendsTotal.Inc()
	m.CommitLogAppendDuration.Observe(seconds)
}

func (m *Metrics) RecordReplay(records int) {
	if m == nil {
		return
	}
	m.CommitLogReplayed.Add(float64(records))
}

// RecordReap records a reaper run of the given kind and what it purged.
func (m *Metrics) RecordReap(kind string, purged int) {
	if m == nil {
		return
	}
	m.ReaperRunsTotal.WithLabelValues(kind).Inc()
	m.ReaperPurgedTotal.Add(float64(purged))
}

func (m *Metrics) RecordCDCEvent() {
	if m == nil {
		return
	}
	m.CDCEventsTotal.Inc()
}

func (m *Metrics) RecordCDCDropped() {
	if m == nil {
		return
	}
	m.CDCDroppedTotal.Inc()
}

func (m *Metrics) SetCDCSubscribers(n int) {
	if m == nil {
		return
	}
	m.CDCSubscribers.Set(float64(n))
}
