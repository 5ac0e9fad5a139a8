package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder counts asynchronous persistence work.
type Recorder struct {
	written *prometheus.CounterVec
	failed  *prometheus.CounterVec
	dropped *prometheus.CounterVec
	queue   prometheus.Gauge
}

// NewRecorder creates the recorder collectors. Register them with Collectors.
func NewRecorder() *Recorder {
	return &Recorder{
		written: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_written_total",
			Help: "Records persisted asynchronously by kind",
		}, []string{"kind"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_failed_total",
			Help: "Records given up on after retries by kind",
		}, []string{"kind"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_dropped_total",
			Help: "Records dropped because the queue was full by kind",
		}, []string{"kind"}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "recorder_queue_length",
			Help: "Records waiting to be persisted",
		}),
	}
}

// Collectors returns everything that needs registering.
func (r *Recorder) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.written, r.failed, r.dropped, r.queue}
}

func (r *Recorder) Written(kind string) { r.written.WithLabelValues(kind).Inc() }

func (r *Recorder) Failed(kind string) { r.failed.WithLabelValues(kind).Inc() }

func (r *Recorder) Dropped(kind string) { r.dropped.WithLabelValues(kind).Inc() }

func (r *Recorder) QueueLength(n int) { r.queue.Set(float64(n)) }
