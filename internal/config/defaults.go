package config

import "time"

const (
	defaultPort      = 8080
	defaultAdminPort = 9090
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "tracking",
}

var defaultAuth = Auth{
	Issuer: "accounts",
	TTL:    time.Hour,
}

var defaultTracking = Tracking{
	HeartbeatTimeout: 30 * time.Second,
	QueueSize:        64,
	ClockSkew:        5 * time.Second,
	Shards:           32,
	AuthTimeout:      5 * time.Second,
	PingInterval:     10 * time.Second,
}

var defaultBreadcrumbs = Breadcrumbs{
	Interval:  10 * time.Second,
	MinMeters: 50,
}

var defaultRecorder = Recorder{
	QueueSize:     1024,
	RetryAttempts: 4,
	RetryBase:     150 * time.Millisecond,
	RetryMax:      2 * time.Second,
}

var defaultKafka = Kafka{
	GroupID:     "service-tracking",
	OrdersTopic: "orders.events",
	StatusTopic: "deliveries.status",
}

var defaultRateLimit = RateLimit{
	Enabled:           true,
	Rate:              10,
	Burst:             20,
	TTL:               5 * time.Minute,
	MaxBuckets:        10000,
	ConnectsPerMinute: 30,
}

var defaultLog = Log{
	Backend: LogSlog,
	Level:   "info",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultTracking returns the default live tracking settings.
func DefaultTracking() Tracking {
	return defaultTracking
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
