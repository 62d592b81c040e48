// Package metrics exposes Prometheus instrumentation for the render pipeline
// and the artifact store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for document rendering and storage.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. Returns an error on
// registration conflicts rather than panicking.
func New(reg prometheus.Registerer, artifactCount func() int, artifactBytes func() int64) (*Metrics, error) {
	m := &Metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docpress_renders_total",
				Help: "Total render requests by document type and outcome.",
			},
			[]string{"type", "outcome"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docpress_render_duration_seconds",
				Help:    "Render duration by document type.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
	}

	collectors := []prometheus.Collector{
		m.renders,
		m.renderDuration,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "docpress_artifacts_stored",
			Help: "Number of artifacts currently retained.",
		}, func() float64 { return float64(artifactCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "docpress_artifact_bytes_stored",
			Help: "Total bytes of artifacts currently retained.",
		}, func() float64 { return float64(artifactBytes()) }),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(docType, outcome string, elapsed time.Duration) {
	m.renders.WithLabelValues(docType, outcome).Inc()
	m.renderDuration.WithLabelValues(docType).Observe(elapsed.Seconds())
}
