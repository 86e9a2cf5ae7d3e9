package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBackendMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBackendMetrics(reg)
	m.ObserveRequest("healthie", "GetPatient", "ok")
	m.ObserveRequest("junction", "GetLabResults", "error")
	m.ObserveDuration("healthie", "GetPatient", 0.25)
}

func TestBackendMetricsNilSafe(t *testing.T) {
	var m *BackendMetrics
	m.ObserveRequest("healthie", "GetPatient", "ok")
	m.ObserveDuration("healthie", "GetPatient", 0.1)
}
