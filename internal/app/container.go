package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-tracking/internal/auth"
	"service-tracking/internal/config"
	"service-tracking/internal/http/adminserver"
	"service-tracking/internal/http/handlers"
	"service-tracking/internal/http/middleware/ratelimit"
	"service-tracking/internal/http/router"
	"service-tracking/internal/logx"
	"service-tracking/internal/metrics"
	"service-tracking/internal/pricing"
	"service-tracking/internal/recorder"
	"service-tracking/internal/retry"
	"service-tracking/internal/service/dispatch"
	"service-tracking/internal/service/orders"
	"service-tracking/internal/tracking"
	"service-tracking/internal/transport/kafka"
	"service-tracking/internal/transport/ws"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	openStore  storeOpener
	registry   *prometheus.Registry
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		openStore:  openStore,
		logFatalf:  log.Fatalf,
	}
}

// WithConfig replaces config.Load, mostly for tests.
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithStoreOpener sets how the storage backend is opened.
func (b *ContainerBuilder) WithStoreOpener(fn storeOpener) *ContainerBuilder {
	if fn != nil {
		b.openStore = fn
	}
	return b
}

// WithRegistry registers collectors on reg instead of the global registry.
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	b.registry = reg
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig, b.registry); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStorage(container, b.openStore); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(
	container *dig.Container,
	ctx context.Context,
	loadConfig func() (*config.Config, error),
	reg *prometheus.Registry,
) error {
	registerer, gatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		func() prometheus.Registerer { return registerer },
		func() prometheus.Gatherer { return gatherer },
	)
}

func registerStorage(container *dig.Container, open storeOpener) error {
	return provideAll(container,
		func(ctx context.Context, cfg *config.Config, logger logx.Logger) (Storage, storeCloser, error) {
			return open(ctx, cfg, logger)
		},
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		newRetrier,
		newZoneEngine,
		func(cfg *config.Config) (*auth.JWT, error) {
			return auth.NewJWT(auth.Config{Secret: cfg.Auth.Secret, Issuer: cfg.Auth.Issuer, TTL: cfg.Auth.TTL})
		},
		newRecorder,
		newHub,
		newCoordinator,
		func(c *dispatch.Coordinator, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(c, logger)
		},
	)
}

func registerKafka(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, p.Handle)
		},
		func(cfg *config.Config, logger logx.Logger) (statusPublisher, error) {
			p, err := kafka.NewStatusProducer(logger, cfg.Kafka.Brokers, cfg.Kafka.StatusTopic)
			return statusPublisher{producer: p}, err
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			// без ReadTimeout/WriteTimeout: они оборвали бы долгие WebSocket-сессии
			IdleTimeout: 60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, c *dispatch.Coordinator) *handlers.FeeHandler {
			return handlers.NewFeeHandler(logger, c)
		},
		func(logger logx.Logger, c *dispatch.Coordinator) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, c)
		},
		func(logger logx.Logger, c *dispatch.Coordinator) *handlers.CourierHandler {
			return handlers.NewCourierHandler(logger, c)
		},
		func(cfg *config.Config, hub *tracking.Hub, logger logx.Logger) *ws.Handler {
			return ws.NewHandler(hub, ws.Config{
				AuthTimeout:    cfg.Tracking.AuthTimeout,
				PingInterval:   cfg.Tracking.PingInterval,
				AllowedOrigins: cfg.Tracking.AllowedOrigins,
			}, logger)
		},
		newRateLimitClock,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
		newAdminServer,
	)
}

type routerIn struct {
	dig.In
	Config     *config.Config
	Logger     logx.Logger
	Base       *handlers.Handlers
	Fees       *handlers.FeeHandler
	Deliveries *handlers.DeliveryHandler
	Couriers   *handlers.CourierHandler
	Tracking   *ws.Handler
	JWT        *auth.JWT
	RateLimit  *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:        in.Logger,
		Base:          in.Base,
		Fees:          in.Fees,
		Deliveries:    in.Deliveries,
		Couriers:      in.Couriers,
		Tracking:      in.Tracking,
		Authenticator: in.JWT,
		RateLimit:     in.RateLimit,
		Timeout:       in.Config.HTTPTimeout,
	})
}

// adminServer is nil when the admin port is 0.
type adminServer struct{ *http.Server }

func newAdminServer(cfg *config.Config, gatherer prometheus.Gatherer) adminServer {
	if cfg.Admin.Port == 0 {
		return adminServer{}
	}
	return adminServer{&http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler: adminserver.Handler(adminserver.Config{
			User: cfg.Admin.PprofUser,
			Pass: cfg.Admin.PprofPass,
		}, gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func newRetrier(cfg *config.Config, logger logx.Logger, reg prometheus.Registerer) (*retry.Retrier, error) {
	retries := metrics.NewStorageRetriesTotal()
	if err := reg.Register(retries); err != nil {
		return nil, fmt.Errorf("register storage retries: %w", err)
	}
	return retry.New(retry.Config{
		MaxAttempts: cfg.Recorder.RetryAttempts,
		BaseDelay:   cfg.Recorder.RetryBase,
		MaxDelay:    cfg.Recorder.RetryMax,
	}, logger, retries), nil
}

// newZoneEngine loads the fee table from storage, seeding it from the zones file on
// first start.
func newZoneEngine(ctx context.Context, cfg *config.Config, store Storage, logger logx.Logger) (*pricing.Engine, error) {
	var fallback []pricing.Zone
	if cfg.ZonesFile != "" {
		zones, err := pricing.LoadZonesFile(cfg.ZonesFile)
		if err != nil {
			return nil, err
		}
		fallback = zones
	}
	zones, err := dispatch.LoadZones(ctx, store, fallback)
	if err != nil {
		return nil, err
	}
	logger.Info("fee zones loaded", logx.Int("zones", len(zones)))
	return pricing.NewEngine(zones)
}

func newRecorder(
	cfg *config.Config,
	store Storage,
	retrier *retry.Retrier,
	logger logx.Logger,
	reg prometheus.Registerer,
	publisher statusPublisher,
) (*recorder.Recorder, error) {
	m := metrics.NewRecorder()
	if err := registerAll(reg, m.Collectors()...); err != nil {
		return nil, err
	}
	opts := []recorder.Option{recorder.WithObserver(m)}
	// nil *StatusProducer в интерфейсе не nil, проверяем явно
	if publisher.producer != nil {
		opts = append(opts, recorder.WithPublisher(publisher.producer))
	}
	return recorder.New(recorder.Config{
		QueueSize:           cfg.Recorder.QueueSize,
		BreadcrumbInterval:  cfg.Breadcrumbs.Interval,
		BreadcrumbMinMeters: cfg.Breadcrumbs.MinMeters,
	}, store, retrier, logger, opts...), nil
}

// statusPublisher wraps the optional Kafka producer so dig can hand out "none".
type statusPublisher struct{ producer *kafka.StatusProducer }

func newHub(
	cfg *config.Config,
	jwt *auth.JWT,
	store Storage,
	rec *recorder.Recorder,
	logger logx.Logger,
	reg prometheus.Registerer,
) (*tracking.Hub, error) {
	m := metrics.NewTracking()
	if err := registerAll(reg, m.Collectors()...); err != nil {
		return nil, err
	}
	return tracking.NewHub(tracking.Config{
		HeartbeatTimeout: cfg.Tracking.HeartbeatTimeout,
		QueueSize:        cfg.Tracking.QueueSize,
		ClockSkew:        cfg.Tracking.ClockSkew,
		Shards:           cfg.Tracking.Shards,
	}, jwt, store, logger, tracking.WithObserver(m), tracking.WithSampleSink(rec)), nil
}

func newCoordinator(
	store Storage,
	engine *pricing.Engine,
	hub *tracking.Hub,
	rec *recorder.Recorder,
	retrier *retry.Retrier,
	logger logx.Logger,
) *dispatch.Coordinator {
	c := dispatch.New(dispatch.Deps{
		Deliveries: store,
		Couriers:   store,
		Zones:      store,
		Engine:     engine,
		Tracker:    hub,
		Recorder:   rec,
		Retrier:    retrier,
		Logger:     logger,
	})
	hub.BindStatusApplier(c)
	return c
}

func registerAll(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}
