package metrics

import "github.com/prometheus/client_golang/prometheus"

// Tracking implements the tracking hub observer on top of Prometheus collectors.
type Tracking struct {
	connections prometheus.Gauge
	closed      *prometheus.CounterVec
	sessions    prometheus.Gauge
	samples     *prometheus.CounterVec
	dropped     prometheus.Counter
	evicted     prometheus.Counter
}

// NewTracking creates the hub collectors. Register them with Collectors.
func NewTracking() *Tracking {
	return &Tracking{
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracking_connections",
			Help: "Currently open tracking connections",
		}),
		closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_connections_closed_total",
			Help: "Closed tracking connections by reason",
		}, []string{"reason"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracking_sessions",
			Help: "Active delivery subscriptions",
		}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_samples_total",
			Help: "Location samples by outcome",
		}, []string{"outcome"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracking_fanout_dropped_total",
			Help: "Subscribers dropped because their outbound queue was full",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracking_evictions_total",
			Help: "Connections evicted after missing the heartbeat timeout",
		}),
	}
}

// Collectors returns everything that needs registering.
func (t *Tracking) Collectors() []prometheus.Collector {
	return []prometheus.Collector{t.connections, t.closed, t.sessions, t.samples, t.dropped, t.evicted}
}

func (t *Tracking) ConnectionOpened() { t.connections.Inc() }

func (t *Tracking) ConnectionClosed(reason string) {
	t.connections.Dec()
	t.closed.WithLabelValues(reason).Inc()
}

func (t *Tracking) SessionsChanged(delta int) { t.sessions.Add(float64(delta)) }

func (t *Tracking) Sample(outcome string) { t.samples.WithLabelValues(outcome).Inc() }

func (t *Tracking) FanoutDropped() { t.dropped.Inc() }

func (t *Tracking) Evicted() { t.evicted.Inc() }
