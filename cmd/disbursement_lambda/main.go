package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/property-escrow/pkg/bootstrap"
	"github.com/chris/property-escrow/pkg/config"
	"github.com/chris/property-escrow/pkg/logging"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/scheduler"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/chris/property-escrow/pkg/transactions"
)

// Disburser is the part of the transaction service the consumer needs.
type Disburser interface {
	Disburse(ctx context.Context, txID string) (*models.Transaction, error)
	ScheduleDisbursement(ctx context.Context, tx *models.Transaction) error
}

// Handler consumes the disbursement queue.
type Handler struct {
	svc    Disburser
	logger *slog.Logger
}

// HandleRequest disburses every message in the batch. Failed messages are reported individually
// so SQS redelivers only those; persistent failures end up on the queue's DLQ.
func (h *Handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		if err := h.process(ctx, message); err != nil {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		}
	}
	return resp, nil
}

func (h *Handler) process(ctx context.Context, message events.SQSMessage) error {
	logger := h.logger.With("message_id", message.MessageId)

	var req scheduler.DisbursementRequest
	if err := json.Unmarshal([]byte(message.Body), &req); err != nil {
		logger.ErrorContext(ctx, "failed to unmarshal disbursement request", "error", err)
		return err
	}
	logger = logger.With("transaction_id", req.TransactionID)

	tx, err := h.svc.Disburse(ctx, req.TransactionID)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "disbursement processed", "status", tx.Status)
		return nil
	case errors.Is(err, transactions.ErrNotDue):
		// SQS caps message delays, so long cooling-off periods take several hops.
		if err := h.svc.ScheduleDisbursement(ctx, tx); err != nil {
			logger.ErrorContext(ctx, "failed to re-enqueue disbursement", "error", err)
			return err
		}
		logger.InfoContext(ctx, "disbursement not yet due, re-enqueued", "due_at", tx.PayoutSnapshot.ScheduledAt)
		return nil
	case errors.Is(err, transactions.ErrInvalidState), errors.Is(err, storage.ErrNotFound):
		// Disputed, refunded or deleted meanwhile; retrying cannot help.
		logger.WarnContext(ctx, "disbursement dropped", "error", err)
		return nil
	default:
		logger.ErrorContext(ctx, "failed to disburse transaction", "error", err)
		return err
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

	h := &Handler{svc: app.Service, logger: logger}
	lambda.Start(h.HandleRequest)
}
