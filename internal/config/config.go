package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"service-tracking/internal/apperr"
	"service-tracking/internal/logx"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Log backends.
const (
	LogSlog = "slog"
	LogZap  = "zap"
)

// Config stores service settings.
type Config struct {
	Port        int
	Storage     string
	ZonesFile   string
	HTTPTimeout time.Duration

	DB          DB
	Auth        Auth
	Tracking    Tracking
	Breadcrumbs Breadcrumbs
	Recorder    Recorder
	Kafka       Kafka
	RateLimit   RateLimit
	Admin       Admin
	Log         Log
}

// DB is the postgres connection.
type DB struct {
	Host    string
	Port    string
	User    string
	Pass    string
	Name    string
	Migrate bool
}

// DSN builds a postgres:// URL usable by both pgx and migrate.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Auth verifies bearer tokens issued by the account service.
type Auth struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Tracking tunes the live hub and the socket layer.
type Tracking struct {
	HeartbeatTimeout time.Duration
	QueueSize        int
	ClockSkew        time.Duration
	Shards           int
	AuthTimeout      time.Duration
	PingInterval     time.Duration
	AllowedOrigins   []string
}

// Breadcrumbs controls how densely positions are persisted.
type Breadcrumbs struct {
	Interval  time.Duration
	MinMeters float64
}

// Recorder tunes asynchronous persistence.
type Recorder struct {
	QueueSize     int
	RetryAttempts int
	RetryBase     time.Duration
	RetryMax      time.Duration
}

// Kafka is optional: no brokers means no consumer and no status producer.
type Kafka struct {
	Brokers     []string
	GroupID     string
	OrdersTopic string
	StatusTopic string
}

// Enabled reports whether brokers are configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// RateLimit configures the per-IP limiters.
type RateLimit struct {
	Enabled           bool
	Rate              float64
	Burst             int
	TTL               time.Duration
	MaxBuckets        int
	ConnectsPerMinute int
}

// Admin is the metrics and pprof listener. Port 0 disables it.
type Admin struct {
	Port      int
	PprofUser string
	PprofPass string
}

// Log selects the logger backend.
type Log struct {
	Backend string
	Level   string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs is Load with explicit command line arguments.
func LoadArgs(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	e := &env{}
	cfg := &Config{
		Port:        e.int("PORT", defaultPort),
		Storage:     strings.ToLower(e.str("STORAGE_DRIVER", StoragePostgres)),
		ZonesFile:   e.str("ZONES_FILE", ""),
		HTTPTimeout: e.dur("HTTP_TIMEOUT", 5*time.Second),
		DB: DB{
			Host:    e.str("POSTGRES_HOST", defaultDB.Host),
			Port:    e.str("POSTGRES_PORT", defaultDB.Port),
			User:    e.str("POSTGRES_USER", defaultDB.User),
			Pass:    e.str("POSTGRES_PASSWORD", defaultDB.Pass),
			Name:    e.str("POSTGRES_DB", defaultDB.Name),
			Migrate: e.bool("DB_MIGRATE", true),
		},
		Auth: Auth{
			Secret: e.str("JWT_SECRET", ""),
			Issuer: e.str("JWT_ISSUER", defaultAuth.Issuer),
			TTL:    e.dur("JWT_TTL", defaultAuth.TTL),
		},
		Tracking: Tracking{
			HeartbeatTimeout: e.dur("WS_HEARTBEAT_TIMEOUT", defaultTracking.HeartbeatTimeout),
			QueueSize:        e.int("WS_QUEUE_SIZE", defaultTracking.QueueSize),
			ClockSkew:        e.dur("WS_CLOCK_SKEW", defaultTracking.ClockSkew),
			Shards:           e.int("WS_SHARDS", defaultTracking.Shards),
			AuthTimeout:      e.dur("WS_AUTH_TIMEOUT", defaultTracking.AuthTimeout),
			PingInterval:     e.dur("WS_PING_INTERVAL", defaultTracking.PingInterval),
			AllowedOrigins:   e.list("WS_ALLOWED_ORIGINS"),
		},
		Breadcrumbs: Breadcrumbs{
			Interval:  e.dur("BREADCRUMB_INTERVAL", defaultBreadcrumbs.Interval),
			MinMeters: e.float("BREADCRUMB_MIN_METERS", defaultBreadcrumbs.MinMeters),
		},
		Recorder: Recorder{
			QueueSize:     e.int("RECORDER_QUEUE_SIZE", defaultRecorder.QueueSize),
			RetryAttempts: e.int("RECORDER_RETRY_ATTEMPTS", defaultRecorder.RetryAttempts),
			RetryBase:     e.dur("RECORDER_RETRY_BASE_DELAY", defaultRecorder.RetryBase),
			RetryMax:      e.dur("RECORDER_RETRY_MAX_DELAY", defaultRecorder.RetryMax),
		},
		Kafka: Kafka{
			Brokers:     e.list("KAFKA_BROKERS"),
			GroupID:     e.str("KAFKA_GROUP_ID", defaultKafka.GroupID),
			OrdersTopic: e.str("KAFKA_ORDERS_TOPIC", defaultKafka.OrdersTopic),
			StatusTopic: e.str("KAFKA_STATUS_TOPIC", defaultKafka.StatusTopic),
		},
		RateLimit: RateLimit{
			Enabled:           e.bool("RATE_LIMIT_ENABLED", defaultRateLimit.Enabled),
			Rate:              e.float("RATE_LIMIT_RATE", defaultRateLimit.Rate),
			Burst:             e.int("RATE_LIMIT_BURST", defaultRateLimit.Burst),
			TTL:               e.dur("RATE_LIMIT_TTL", defaultRateLimit.TTL),
			MaxBuckets:        e.int("RATE_LIMIT_MAX_BUCKETS", defaultRateLimit.MaxBuckets),
			ConnectsPerMinute: e.int("RATE_LIMIT_CONNECTS_PER_MINUTE", defaultRateLimit.ConnectsPerMinute),
		},
		Admin: Admin{
			Port:      e.int("ADMIN_PORT", defaultAdminPort),
			PprofUser: e.str("PPROF_USER", ""),
			PprofPass: e.str("PPROF_PASS", ""),
		},
		Log: Log{
			Backend: strings.ToLower(e.str("LOG_BACKEND", defaultLog.Backend)),
			Level:   e.str("LOG_LEVEL", defaultLog.Level),
		},
	}
	if err := errors.Join(e.errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfiguration, err)
	}

	flags := pflag.NewFlagSet("tracking-server", pflag.ContinueOnError)
	flags.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	flags.IntVar(&cfg.Admin.Port, "admin-port", cfg.Admin.Port, "metrics and pprof port, 0 disables")
	flags.StringVar(&cfg.ZonesFile, "zones-file", cfg.ZonesFile, "fee zone table (yaml, json or toml)")
	flags.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage driver: postgres or memory")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfiguration, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfiguration, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Admin.Port < 0 || c.Admin.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid admin port: %d", c.Admin.Port))
	}
	if c.Admin.Port != 0 && c.Admin.Port == c.Port {
		errs = append(errs, fmt.Errorf("admin port %d clashes with the api port", c.Admin.Port))
	}
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage))
	}
	switch c.Log.Backend {
	case LogSlog, LogZap:
	default:
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.Log.Backend))
	}
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Tracking.HeartbeatTimeout <= 0 {
		errs = append(errs, errors.New("WS_HEARTBEAT_TIMEOUT must be positive"))
	}
	if c.Tracking.QueueSize <= 0 {
		errs = append(errs, errors.New("WS_QUEUE_SIZE must be positive"))
	}
	if c.Tracking.ClockSkew < 0 {
		errs = append(errs, errors.New("WS_CLOCK_SKEW must not be negative"))
	}
	if c.Recorder.QueueSize <= 0 {
		errs = append(errs, errors.New("RECORDER_QUEUE_SIZE must be positive"))
	}
	if c.Recorder.RetryAttempts < 1 {
		errs = append(errs, errors.New("RECORDER_RETRY_ATTEMPTS must be at least 1"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate limit needs positive RATE_LIMIT_RATE and RATE_LIMIT_BURST"))
	}
	if c.Kafka.Enabled() && (c.Kafka.GroupID == "" || c.Kafka.OrdersTopic == "") {
		errs = append(errs, errors.New("KAFKA_GROUP_ID and KAFKA_ORDERS_TOPIC are required with KAFKA_BROKERS"))
	}
	return errors.Join(errs...)
}

// env reads typed variables and collects parse errors instead of stopping at the first.
type env struct{ errs []error }

func (e *env) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (e *env) float(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (e *env) bool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (e *env) dur(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

// list splits a comma separated value, dropping blanks.
func (e *env) list(key string) []string {
	v, ok := e.lookup(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
