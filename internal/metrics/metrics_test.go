package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, func() int { return 3 }, func() int64 { return 1024 })
	require.NoError(t, err)

	m.ObserveRender("pdf", "success", 120*time.Millisecond)
	m.ObserveRender("pdf", "success", 80*time.Millisecond)
	m.ObserveRender("docx", "render_error", 10*time.Millisecond)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.renders.WithLabelValues("pdf", "success")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.renders.WithLabelValues("docx", "render_error")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["docpress_artifacts_stored"])
	assert.True(t, names["docpress_artifact_bytes_stored"])
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, func() int { return 0 }, func() int64 { return 0 })
	require.NoError(t, err)

	_, err = New(reg, func() int { return 0 }, func() int64 { return 0 })
	assert.Error(t, err)
}
