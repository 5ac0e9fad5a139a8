package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTracking_Counts(t *testing.T) {
	t.Parallel()

	m := NewTracking()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.Collectors()...)

	m.ConnectionOpened()
	m.ConnectionOpened()
	m.ConnectionClosed("slow_consumer")
	m.SessionsChanged(3)
	m.SessionsChanged(-1)
	m.Sample("accepted")
	m.Sample("accepted")
	m.Sample("stale")
	m.FanoutDropped()
	m.Evicted()

	require.Equal(t, 1.0, testutil.ToFloat64(m.connections))
	require.Equal(t, 1.0, testutil.ToFloat64(m.closed.WithLabelValues("slow_consumer")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.sessions))
	require.Equal(t, 2.0, testutil.ToFloat64(m.samples.WithLabelValues("accepted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.samples.WithLabelValues("stale")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.dropped))
	require.Equal(t, 1.0, testutil.ToFloat64(m.evicted))
}

func TestRecorder_Counts(t *testing.T) {
	t.Parallel()

	m := NewRecorder()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.Collectors()...)

	m.Written("status")
	m.Failed("breadcrumb")
	m.Dropped("breadcrumb")
	m.QueueLength(7)

	require.Equal(t, 1.0, testutil.ToFloat64(m.written.WithLabelValues("status")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.failed.WithLabelValues("breadcrumb")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.dropped.WithLabelValues("breadcrumb")))
	require.Equal(t, 7.0, testutil.ToFloat64(m.queue))
}

func TestCounters_HaveStableNames(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	denied := NewRateLimitExceededTotal()
	reg.MustRegister(denied, NewStorageRetriesTotal())
	denied.WithLabelValues("api").Inc()

	n, err := testutil.GatherAndCount(reg, "rate_limit_exceeded_total", "storage_retries_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
