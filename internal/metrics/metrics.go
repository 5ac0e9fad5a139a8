package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting,
// labelled by limiter class (api, ws_connect).
func NewRateLimitExceededTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	}, []string{"class"})
}

// NewStorageRetriesTotal returns a Prometheus counter for the number of retried storage operations
func NewStorageRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storage_retries_total",
		Help: "Total number of retry attempts performed against storage",
	})
}
