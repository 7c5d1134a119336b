package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsUnregistered_Independent(t *testing.T) {
	a := NewMetricsUnregistered()
	b := NewMetricsUnregistered()

	a.CurvesPublished.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.CurvesPublished))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CurvesPublished))

	// Unregistered instances can still be registered into a private registry.
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(a.CurvesPublished))
	require.NoError(t, reg.Register(b.LoadDuration))
}
