// Package recorder persists audit events and breadcrumbs off the request path.
package recorder

import (
	"context"
	"sync"
	"time"

	"service-tracking/internal/domain"
	"service-tracking/internal/logx"
	"service-tracking/internal/retry"
)

// Record kinds, also used as metric labels.
const (
	KindStatusEvent   = "status_event"
	KindStatusPublish = "status_publish"
	KindBreadcrumb    = "breadcrumb"
)

// Config tunes the recorder.
type Config struct {
	QueueSize           int
	Workers             int
	BreadcrumbInterval  time.Duration
	BreadcrumbMinMeters float64
	// DrainTimeout bounds how long Run keeps writing queued records after ctx is done.
	DrainTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.BreadcrumbInterval <= 0 {
		c.BreadcrumbInterval = 10 * time.Second
	}
	if c.BreadcrumbMinMeters <= 0 {
		c.BreadcrumbMinMeters = 50
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = 5 * time.Second
	}
	return c
}

type job struct {
	kind       string
	deliveryID string
	run        func(ctx context.Context) error
}

// Recorder queues writes and runs them on background workers. Enqueueing never
// blocks; a full queue drops the record and counts it.
type Recorder struct {
	cfg       Config
	store     Store
	publisher StatusPublisher
	retrier   *retry.Retrier
	obs       Observer
	logger    logx.Logger
	sampler   *sampler

	jobs chan job
	wg   sync.WaitGroup
}

// Option customizes a Recorder.
type Option func(*Recorder)

// WithPublisher also forwards status events to p.
func WithPublisher(p StatusPublisher) Option { return func(r *Recorder) { r.publisher = p } }

// WithObserver reports recorder activity to o.
func WithObserver(o Observer) Option { return func(r *Recorder) { r.obs = o } }

// New builds a Recorder. Run must be started for records to be written.
func New(cfg Config, store Store, retrier *retry.Retrier, logger logx.Logger, opts ...Option) *Recorder {
	if logger == nil {
		logger = logx.Nop()
	}
	cfg = cfg.withDefaults()
	r := &Recorder{
		cfg:     cfg,
		store:   store,
		retrier: retrier,
		obs:     nopObserver{},
		logger:  logger,
		sampler: newSampler(cfg.BreadcrumbInterval, cfg.BreadcrumbMinMeters),
		jobs:    make(chan job, cfg.QueueSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordStatus queues the audit event of an applied transition and, when a publisher
// is configured, its downstream notification.
func (r *Recorder) RecordStatus(d *domain.Delivery, ev domain.StatusEvent) {
	if ev.To.Terminal() {
		r.sampler.forget(ev.DeliveryID)
	}
	r.enqueue(job{
		kind:       KindStatusEvent,
		deliveryID: ev.DeliveryID,
		run: func(ctx context.Context) error {
			return r.store.AppendStatusEvent(ctx, ev)
		},
	})
	if r.publisher == nil {
		return
	}
	snap := d.Clone()
	r.enqueue(job{
		kind:       KindStatusPublish,
		deliveryID: ev.DeliveryID,
		run: func(ctx context.Context) error {
			return r.publisher.PublishStatus(ctx, snap, ev)
		},
	})
}

// RecordSample queues the sample as a breadcrumb if the sampling policy keeps it.
func (r *Recorder) RecordSample(s domain.LocationSample) {
	if !r.sampler.keep(s) {
		return
	}
	r.enqueue(job{
		kind:       KindBreadcrumb,
		deliveryID: s.DeliveryID,
		run: func(ctx context.Context) error {
			return r.store.AppendBreadcrumb(ctx, s)
		},
	})
}

func (r *Recorder) enqueue(j job) {
	select {
	case r.jobs <- j:
		r.obs.QueueLength(len(r.jobs))
	default:
		r.obs.Dropped(j.kind)
		r.logger.Warn("recorder queue full, record dropped",
			logx.String("kind", j.kind),
			logx.String("delivery_id", j.deliveryID),
		)
	}
}

// Run writes queued records until ctx is done, then drains what is left within
// DrainTimeout.
func (r *Recorder) Run(ctx context.Context) error {
	r.logger.Info("recorder started",
		logx.Int("workers", r.cfg.Workers),
		logx.Int("queue_size", r.cfg.QueueSize),
	)
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go r.work(ctx)
	}
	r.wg.Wait()

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.DrainTimeout)
	defer cancel()
	n := r.drain(drainCtx)
	r.logger.Info("recorder stopped", logx.Int("drained", n))
	return nil
}

func (r *Recorder) work(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-r.jobs:
			r.obs.QueueLength(len(r.jobs))
			r.write(ctx, j)
		}
	}
}

func (r *Recorder) drain(ctx context.Context) int {
	n := 0
	for {
		select {
		case j := <-r.jobs:
			if ctx.Err() != nil {
				r.obs.Dropped(j.kind)
				continue
			}
			r.write(ctx, j)
			n++
		default:
			r.obs.QueueLength(0)
			return n
		}
	}
}

func (r *Recorder) write(ctx context.Context, j job) {
	err := r.retrier.Do(ctx, j.kind, j.run)
	if err == nil {
		r.obs.Written(j.kind)
		return
	}
	r.obs.Failed(j.kind)
	r.logger.Error("record not persisted",
		logx.String("kind", j.kind),
		logx.String("delivery_id", j.deliveryID),
		logx.Err(err),
	)
}
