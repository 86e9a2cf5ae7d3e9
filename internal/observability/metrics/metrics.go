package metrics

import "github.com/prometheus/client_golang/prometheus"

// BackendMetrics exposes counters/histograms for vendor API calls.
type BackendMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	m := &BackendMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "openloop",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total vendor API requests",
		}, []string{"backend", "operation", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "openloop",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latency of vendor API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func (m *BackendMetrics) ObserveRequest(backend, operation, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(backend, operation, status).Inc()
}

func (m *BackendMetrics) ObserveDuration(backend, operation string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(backend, operation).Observe(seconds)
}
