package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.IncMutation("create", "ok")
	m.IncRefetch()
	m.IncUnsettled()
	m.ObserveViewBuild(time.Millisecond)
}

func TestCounters(t *testing.T) {
	m := New()

	m.IncMutation("create", "ok")
	m.IncMutation("create", "ok")
	m.IncMutation("delete", "failed")
	m.IncRefetch()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("delete", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefetchAttempts))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RefetchUnsettled))
}
