package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"service-tracking/internal/logx"
	"service-tracking/internal/recorder"
	"service-tracking/internal/service/dispatch"
	"service-tracking/internal/tracking"
	"service-tracking/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the service using the provided DI container and blocks until ctx ends.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In
	Ctx       context.Context
	Logger    logx.Logger
	Server    *http.Server
	Admin     adminServer
	Hub       *tracking.Hub
	Recorder  *recorder.Recorder
	Dispatch  *dispatch.Coordinator
	Consumer  *kafka.Consumer
	Publisher statusPublisher
	Closer    storeCloser
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		return serve(in)
	})
}

// serve runs every component until ctx is done or one of them fails, then shuts the
// rest down: listeners first, then the hub (its janitor closes every connection), then
// the recorder drains, then storage.
func serve(in runIn) error {
	logger := in.Logger
	defer func() { _ = logger.Sync() }()
	defer in.Closer()
	defer closeKafka(in.Consumer, in.Publisher, logger)

	if _, err := in.Dispatch.RestoreLive(in.Ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(in.Ctx)

	// recorder живёт на своём контексте: ему нужно дописать очередь после остановки
	recCtx, stopRecorder := context.WithCancel(context.Background())
	recDone := make(chan error, 1)
	go func() { recDone <- in.Recorder.Run(recCtx) }()

	g.Go(func() error { return in.Hub.Run(ctx) })
	g.Go(func() error { return listen(in.Server, "api", logger) })
	if in.Admin.Server != nil {
		g.Go(func() error { return listen(in.Admin.Server, "admin", logger) })
	}
	if in.Consumer != nil {
		g.Go(func() error { return in.Consumer.Run(ctx) })
	}
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down service-tracking")
		shutdown(in.Server, logger)
		if in.Admin.Server != nil {
			shutdown(in.Admin.Server, logger)
		}
		return nil
	})

	err := g.Wait()
	stopRecorder()
	if recErr := <-recDone; recErr != nil && !errors.Is(recErr, context.Canceled) {
		logger.Error("recorder stopped with error", logx.Err(recErr))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return in.Ctx.Err()
}

func listen(srv *http.Server, name string, logger logx.Logger) error {
	logger.Info("http listening", logx.String("server", name), logx.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func shutdown(srv *http.Server, logger logx.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
		_ = srv.Close()
	}
}

func closeKafka(consumer *kafka.Consumer, publisher statusPublisher, logger logx.Logger) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka consumer close error", logx.Err(err))
	}
	if err := publisher.producer.Close(); err != nil {
		logger.Error("kafka producer close error", logx.Err(err))
	}
}
