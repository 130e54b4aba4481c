package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris/property-escrow/pkg/api"
	"github.com/chris/property-escrow/pkg/bootstrap"
	"github.com/chris/property-escrow/pkg/config"
	"github.com/chris/property-escrow/pkg/handlers"
	"github.com/chris/property-escrow/pkg/logging"
	appmw "github.com/chris/property-escrow/pkg/middleware"
	"github.com/chris/property-escrow/pkg/reconciler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	// Every initiated payment gets a poller; the service hands them over as they are created.
	poller := reconciler.NewPoller(app.Service, app.Notifier, app.Locker, logger, app.PollerConfig())
	app.Service.SetWatcher(poller)
	defer poller.Stop()

	sweeper := reconciler.NewSweeper(app.Store, app.Service, func(_ context.Context, txID string) {
		poller.Watch(txID)
	}, logger, app.SweepConfig())

	// Pick up payments that were being polled before the restart.
	if n, err := sweeper.ResumeStuck(ctx, time.Now()); err != nil {
		logger.Warn("failed to resume pollers at startup", "error", err)
	} else {
		logger.Info("resumed pollers at startup", "count", n)
	}

	sched, err := newSweepScheduler(ctx, sweeper, cfg.Reconciler.SweepInterval, logger)
	if err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Shutdown(); err != nil {
			logger.Warn("failed to stop sweep scheduler", "error", err)
		}
	}()

	router := newRouter(app, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.HTTP.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(app *bootstrap.App, logger *slog.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appmw.NewStructuredLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	// Use the generated function to mount our handler on the router
	handler := handlers.NewApiHandler(app.Service, app.Config.HTTP.AdminToken, logger)
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: handlers.ParamError,
	})
	return router
}

func newSweepScheduler(ctx context.Context, sweeper *reconciler.Sweeper, every time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create sweep scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			if _, err := sweeper.Sweep(ctx); err != nil {
				logger.Error("sweep failed", "error", err)
			}
		}),
		gocron.WithName("sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule sweep: %w", err)
	}
	return sched, nil
}
