package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/property-escrow/pkg/bootstrap"
	"github.com/chris/property-escrow/pkg/config"
	"github.com/chris/property-escrow/pkg/logging"
	"github.com/chris/property-escrow/pkg/reconciler"
)

// Sweeper runs one sweep over stuck and idle transactions.
type Sweeper interface {
	Sweep(ctx context.Context) (reconciler.SweepResult, error)
}

// Handler is triggered by an EventBridge Schedule.
type Handler struct {
	sweeper Sweeper
	logger  *slog.Logger
}

// HandleRequest sweeps once. Failures on single transactions are logged by the sweeper; only a
// failure to list transactions fails the invocation.
func (h *Handler) HandleRequest(ctx context.Context) error {
	h.logger.InfoContext(ctx, "starting reconciliation sweep")

	res, err := h.sweeper.Sweep(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconciliation sweep failed", "error", err)
		return err
	}

	h.logger.InfoContext(ctx, "reconciliation sweep finished", "resumed", res.Resumed, "rescheduled", res.Rescheduled, "expired", res.Expired)
	return nil
}

// resumeOnce runs a single reconcile pass in place of a long-lived poller.
func resumeOnce(poller *reconciler.Poller, logger *slog.Logger) reconciler.ResumeFunc {
	return func(ctx context.Context, txID string) {
		done, err := poller.ReconcileOnce(ctx, txID)
		if err != nil {
			logger.WarnContext(ctx, "reconcile pass failed, next sweep retries", "transaction_id", txID, "error", err)
			return
		}
		logger.DebugContext(ctx, "reconcile pass finished", "transaction_id", txID, "done", done)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	app, err := bootstrap.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	poller := reconciler.NewPoller(app.Service, app.Notifier, app.Locker, logger, app.PollerConfig())
	sweeper := reconciler.NewSweeper(app.Store, app.Service, resumeOnce(poller, logger), logger, app.SweepConfig())

	h := &Handler{sweeper: sweeper, logger: logger}
	lambda.Start(h.HandleRequest)
}
