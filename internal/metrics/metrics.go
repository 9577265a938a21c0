package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "pnlboard"

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	seriesComputed *prometheus.CounterVec
	seriesDuration *prometheus.HistogramVec
	simulatedPaths prometheus.Counter
	snapshotsTotal *prometheus.CounterVec
	sourceTrades   prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.seriesComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_computed_total",
			Help:      "Total number of derived series computed",
		},
		[]string{"kind"},
	)
	r.seriesDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "series_compute_seconds",
			Help:      "Time spent fetching and transforming a series",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"kind"},
	)
	r.simulatedPaths = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulated_paths_total",
			Help:      "Total number of Monte Carlo paths generated",
		},
	)
	r.snapshotsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_total",
			Help:      "Total number of snapshot writes",
		},
		[]string{"status"},
	)
	r.sourceTrades = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_trades",
			Help:      "Number of trades returned by the last source query",
		},
	)

	reg.MustRegister(r.seriesComputed)
	reg.MustRegister(r.seriesDuration)
	reg.MustRegister(r.simulatedPaths)
	reg.MustRegister(r.snapshotsTotal)
	reg.MustRegister(r.sourceTrades)

	return r
}

// RecordRequest records metrics for an HTTP request. route is the matched
// pattern, not the raw path.
func (r *Registry) RecordRequest(method, route string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, route, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordSeries records one computed series of the given kind
// (cumulative, drawdown, yearly, simulation, stats).
func (r *Registry) RecordSeries(kind string, duration float64) {
	r.seriesComputed.WithLabelValues(kind).Inc()
	r.seriesDuration.WithLabelValues(kind).Observe(duration)
}

// AddSimulatedPaths counts generated Monte Carlo paths.
func (r *Registry) AddSimulatedPaths(n int) {
	r.simulatedPaths.Add(float64(n))
}

// RecordSnapshot records a snapshot write outcome ("success" or "error").
func (r *Registry) RecordSnapshot(status string) {
	r.snapshotsTotal.WithLabelValues(status).Inc()
}

// SetSourceTrades sets the size of the last source result.
func (r *Registry) SetSourceTrades(count int) {
	r.sourceTrades.Set(float64(count))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
