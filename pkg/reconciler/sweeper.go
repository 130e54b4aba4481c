package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/chris/property-escrow/pkg/transactions"
)

const (
	DefaultStuckAfter = 20 * time.Minute
	DefaultIdleTTL    = 24 * time.Hour
	DefaultPaymentTTL = 72 * time.Hour
	DefaultBatchSize  = 100
)

// SweepService is the part of the transaction service the sweeper drives.
type SweepService interface {
	Expire(ctx context.Context, txID string) (*models.Transaction, error)
	ScheduleDisbursement(ctx context.Context, tx *models.Transaction) error
}

// ResumeFunc restarts reconciliation of a transaction. The app passes Poller.Watch; the
// scheduled lambda runs a single pass instead.
type ResumeFunc func(ctx context.Context, txID string)

// SweepConfig tunes the sweeper.
type SweepConfig struct {
	// StuckAfter is how long a transaction may sit in payment_initiated, escrow_funded or
	// awaiting_disbursement before it is picked up again.
	StuckAfter time.Duration
	// IdleTTL expires draft, awaiting_code and verified transactions not touched for this long.
	IdleTTL time.Duration
	// PaymentTTL expires unpaid payment_initiated transactions not touched for this long.
	PaymentTTL time.Duration
	BatchSize  int32
}

func (c SweepConfig) withDefaults() SweepConfig {
	if c.StuckAfter <= 0 {
		c.StuckAfter = DefaultStuckAfter
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = DefaultIdleTTL
	}
	if c.PaymentTTL <= 0 {
		c.PaymentTTL = DefaultPaymentTTL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return c
}

// SweepResult counts what a sweep did.
type SweepResult struct {
	Resumed     int
	Rescheduled int
	Expired     int
}

// Sweeper finds transactions whose background work was lost, e.g. across a restart.
type Sweeper struct {
	store  storage.TransactionReader
	svc    SweepService
	resume ResumeFunc
	logger *slog.Logger
	cfg    SweepConfig
	now    func() time.Time
}

// NewSweeper creates a Sweeper.
func NewSweeper(store storage.TransactionReader, svc SweepService, resume ResumeFunc, logger *slog.Logger, cfg SweepConfig) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:  store,
		svc:    svc,
		resume: resume,
		logger: logger.With("component", "sweeper"),
		cfg:    cfg.withDefaults(),
		now:    time.Now,
	}
}

// Sweep runs every sweep step. A failure on one transaction is logged and does not stop the batch.
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	var errs []error

	n, err := s.ResumeStuck(ctx, s.now().Add(-s.cfg.StuckAfter))
	res.Resumed = n
	errs = append(errs, err)

	n, err = s.RescheduleDisbursements(ctx)
	res.Rescheduled = n
	errs = append(errs, err)

	n, err = s.ExpireIdle(ctx)
	res.Expired = n
	errs = append(errs, err)

	s.logger.InfoContext(ctx, "sweep finished", "resumed", res.Resumed, "rescheduled", res.Rescheduled, "expired", res.Expired)
	return res, errors.Join(errs...)
}

// ResumeStuck restarts reconciliation for transactions waiting on a provider since before cutoff.
func (s *Sweeper) ResumeStuck(ctx context.Context, cutoff time.Time) (int, error) {
	resumed := 0
	for _, status := range []models.TransactionStatus{models.PAYMENT_INITIATED, models.ESCROW_FUNDED} {
		txs, err := s.store.ListTransactionsByStatus(ctx, status, cutoff, s.cfg.BatchSize)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to list stuck transactions", "status", status, "error", err)
			return resumed, err
		}
		for _, tx := range txs {
			if tx.Frozen {
				continue
			}
			s.resume(ctx, tx.Id)
			resumed++
		}
	}
	return resumed, nil
}

// RescheduleDisbursements re-enqueues transactions that have waited for payout past their due time.
// The disbursement consumer is idempotent, so a duplicate message is harmless.
func (s *Sweeper) RescheduleDisbursements(ctx context.Context) (int, error) {
	txs, err := s.store.ListTransactionsByStatus(ctx, models.AWAITING_DISBURSEMENT, s.now().Add(-s.cfg.StuckAfter), s.cfg.BatchSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list stuck disbursements", "error", err)
		return 0, err
	}

	rescheduled := 0
	for i := range txs {
		tx := &txs[i]
		if tx.Frozen {
			continue
		}
		if tx.PayoutSnapshot != nil && tx.PayoutSnapshot.ScheduledAt.After(s.now().Add(-s.cfg.StuckAfter)) {
			continue
		}
		if err := s.svc.ScheduleDisbursement(ctx, tx); err != nil {
			s.logger.ErrorContext(ctx, "failed to re-enqueue disbursement", "transaction_id", tx.Id, "error", err)
			continue
		}
		s.logger.InfoContext(ctx, "re-enqueued disbursement", "transaction_id", tx.Id)
		rescheduled++
	}
	return rescheduled, nil
}

// ExpireIdle expires transactions abandoned before funds were held.
func (s *Sweeper) ExpireIdle(ctx context.Context) (int, error) {
	now := s.now()
	windows := []struct {
		status models.TransactionStatus
		ttl    time.Duration
	}{
		{models.DRAFT, s.cfg.IdleTTL},
		{models.AWAITING_CODE, s.cfg.IdleTTL},
		{models.VERIFIED, s.cfg.IdleTTL},
		{models.PAYMENT_INITIATED, s.cfg.PaymentTTL},
	}

	expired := 0
	for _, w := range windows {
		txs, err := s.store.ListTransactionsByStatus(ctx, w.status, now.Add(-w.ttl), s.cfg.BatchSize)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to list idle transactions", "status", w.status, "error", err)
			return expired, err
		}
		for _, tx := range txs {
			_, err := s.svc.Expire(ctx, tx.Id)
			if errors.Is(err, transactions.ErrInvalidState) {
				// Paid after all, or moved on concurrently.
				s.logger.WarnContext(ctx, "idle transaction not expired", "transaction_id", tx.Id, "error", err)
				if w.status == models.PAYMENT_INITIATED {
					s.resume(ctx, tx.Id)
				}
				continue
			}
			if err != nil {
				s.logger.ErrorContext(ctx, "failed to expire transaction", "transaction_id", tx.Id, "error", err)
				continue
			}
			expired++
		}
	}
	return expired, nil
}
