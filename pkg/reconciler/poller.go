// Package reconciler replays the escrow and card providers' view of a payment into the transaction
// state machine. A Poller watches each initiated payment in its own goroutine; a Sweeper finds
// transactions that lost their poller or stalled elsewhere in the pipeline.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chris/property-escrow/pkg/lock"
	"github.com/chris/property-escrow/pkg/metrics"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/notify"
	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/chris/property-escrow/pkg/transactions"
)

var (
	// ErrReconciliationStalled is reported once a transaction exhausted its retry budget.
	// Polling continues at the maximum interval; the transaction keeps its last known state.
	ErrReconciliationStalled = errors.New("reconciliation stalled")
	// ErrInFlight is returned when a pass for the same transaction is already running.
	ErrInFlight = errors.New("reconciliation already in flight")
)

const (
	DefaultInterval    = 3 * time.Second
	DefaultMaxInterval = time.Minute
	DefaultMaxAttempts = 5
)

// Transactions is the part of the transaction service the reconciler drives.
type Transactions interface {
	Get(ctx context.Context, txID string) (*models.Transaction, error)
	GetEscrowStatus(ctx context.Context, escrowID string) (providers.EscrowStatus, error)
	OnProviderFunded(ctx context.Context, txID, escrowID string) (*models.Transaction, error)
	OnProviderReleased(ctx context.Context, txID, escrowID, payoutReference string) (*models.Transaction, error)
	OnProviderRefunded(ctx context.Context, txID, escrowID string) (*models.Transaction, error)
	LinkPayment(ctx context.Context, txID, reference string) (*models.Transaction, error)
}

// Config tunes the poller.
type Config struct {
	// Interval between passes while the provider reports nothing new.
	Interval time.Duration
	// MaxInterval caps the backoff after failures, and is the pace of a stalled transaction.
	MaxInterval time.Duration
	// MaxAttempts is the number of consecutive failed passes before the operator is alerted.
	MaxAttempts int
	// CallTimeout bounds a single pass so a slow provider cannot hold the loop.
	CallTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxInterval < c.Interval {
		c.MaxInterval = DefaultMaxInterval
		if c.MaxInterval < c.Interval {
			c.MaxInterval = c.Interval
		}
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = providers.DefaultCallTimeout
	}
	return c
}

// Poller reconciles initiated payments against their provider.
type Poller struct {
	svc      Transactions
	notifier notify.Notifier
	locker   lock.Locker
	logger   *slog.Logger
	cfg      Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	watching map[string]struct{}
	inflight sync.Map
}

// Make sure we conform to the interface
var _ transactions.Watcher = (*Poller)(nil)

// NewPoller creates a Poller. locker may be nil when a single process does all polling.
func NewPoller(svc Transactions, notifier notify.Notifier, locker lock.Locker, logger *slog.Logger, cfg Config) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = &notify.LogNotifier{Logger: logger}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		svc:      svc,
		notifier: notifier,
		locker:   locker,
		logger:   logger.With("component", "reconciler"),
		cfg:      cfg.withDefaults(),
		ctx:      ctx,
		cancel:   cancel,
		watching: make(map[string]struct{}),
	}
}

// Watch starts polling txID unless it is already watched or the poller is stopped.
func (p *Poller) Watch(txID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx.Err() != nil {
		return
	}
	if _, ok := p.watching[txID]; ok {
		return
	}
	p.watching[txID] = struct{}{}
	metrics.ActivePollers.Inc()

	p.wg.Add(1)
	go p.run(txID)
}

// Watching reports how many transactions currently have a poller.
func (p *Poller) Watching() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.watching)
}

// Stop cancels every poller and waits for them to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.cancel()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Poller) run(txID string) {
	defer p.wg.Done()
	defer func() {
		p.mu.Lock()
		delete(p.watching, txID)
		p.mu.Unlock()
		metrics.ActivePollers.Dec()
	}()

	logger := p.logger.With("transaction_id", txID)
	logger.Debug("poller started")

	bo := newBackOff(p.cfg)
	failures := 0
	stalled := false
	wait := p.cfg.Interval

	for {
		if err := sleep(p.ctx, wait); err != nil {
			logger.Debug("poller stopped", "reason", err)
			return
		}

		done, err := p.ReconcileOnce(p.ctx, txID)
		if done {
			logger.Debug("poller finished")
			return
		}

		switch {
		case err == nil, errors.Is(err, ErrInFlight):
			failures = 0
			stalled = false
			bo.Reset()
			wait = p.cfg.Interval
			continue
		case p.ctx.Err() != nil:
			return
		}

		failures++
		if failures < p.cfg.MaxAttempts {
			wait = bo.NextBackOff()
			logger.Warn("reconciliation failed, backing off", "attempt", failures, "retry_in", wait, "error", err)
			continue
		}

		wait = p.cfg.MaxInterval
		if !stalled {
			stalled = true
			p.stall(txID, failures, err)
		}
	}
}

func (p *Poller) stall(txID string, attempts int, cause error) {
	metrics.StalledTotal.Inc()
	err := fmt.Errorf("%w: %d consecutive failures: %v", ErrReconciliationStalled, attempts, cause)
	p.logger.Error("reconciliation stalled, transaction left in last known state", "transaction_id", txID, "error", err)

	alert := notify.Alert{Kind: notify.AlertReconciliationStalled, TransactionID: txID, Detail: err.Error()}
	if err := p.notifier.AlertOperator(p.ctx, alert); err != nil {
		p.logger.Error("failed to alert operator", "transaction_id", txID, "error", err)
	}
}

// ReconcileOnce runs a single pass for txID. done reports that the transaction no longer needs
// polling. Passes for the same transaction never overlap, in this process or, with a locker, across processes.
func (p *Poller) ReconcileOnce(ctx context.Context, txID string) (done bool, err error) {
	if _, busy := p.inflight.LoadOrStore(txID, struct{}{}); busy {
		return false, ErrInFlight
	}
	defer p.inflight.Delete(txID)

	if p.locker != nil {
		release, err := p.locker.Acquire(ctx, txID)
		switch {
		case errors.Is(err, lock.ErrNotAcquired):
			return false, ErrInFlight
		case err != nil:
			p.logger.WarnContext(ctx, "reconcile lock unavailable, continuing unlocked", "transaction_id", txID, "error", err)
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					p.logger.WarnContext(ctx, "failed to release reconcile lock", "transaction_id", txID, "error", err)
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	done, err = p.reconcile(ctx, txID)
	outcome := "pending"
	switch {
	case err != nil:
		outcome = "error"
	case done:
		outcome = "done"
	}
	metrics.ReconcileDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return done, err
}

func (p *Poller) reconcile(ctx context.Context, txID string) (bool, error) {
	tx, err := p.svc.Get(ctx, txID)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !pollable(tx.Status) {
		return true, nil
	}
	if tx.Frozen {
		p.logger.WarnContext(ctx, "transaction frozen, polling stopped", "transaction_id", tx.Id, "status", tx.Status)
		return true, nil
	}

	if tx.EscrowId != "" {
		return p.reconcileEscrow(ctx, tx)
	}
	if tx.PaymentReference != "" {
		return p.reconcileCard(ctx, tx)
	}
	p.logger.ErrorContext(ctx, "initiated payment has no provider reference", "transaction_id", tx.Id, "status", tx.Status)
	return true, nil
}

func (p *Poller) reconcileEscrow(ctx context.Context, tx *models.Transaction) (bool, error) {
	status, err := p.svc.GetEscrowStatus(ctx, tx.EscrowId)
	if err != nil {
		metrics.ProviderCallsTotal.WithLabelValues("escrow", "error").Inc()
		return p.settle(ctx, tx, err)
	}
	metrics.ProviderCallsTotal.WithLabelValues("escrow", string(status)).Inc()

	switch status {
	case providers.EscrowFunded:
		_, err = p.svc.OnProviderFunded(ctx, tx.Id, tx.EscrowId)
	case providers.EscrowReleased:
		_, err = p.svc.OnProviderReleased(ctx, tx.Id, tx.EscrowId, tx.EscrowId)
	case providers.EscrowRefunded, providers.EscrowCancelled:
		_, err = p.svc.OnProviderRefunded(ctx, tx.Id, tx.EscrowId)
	default:
		return false, nil
	}
	if err != nil {
		return p.settle(ctx, tx, err)
	}
	p.logger.InfoContext(ctx, "provider status applied", "transaction_id", tx.Id, "escrow_status", status)
	return true, nil
}

func (p *Poller) reconcileCard(ctx context.Context, tx *models.Transaction) (bool, error) {
	updated, err := p.svc.LinkPayment(ctx, tx.Id, tx.PaymentReference)
	if err != nil {
		metrics.ProviderCallsTotal.WithLabelValues("card", "error").Inc()
		return p.settle(ctx, tx, err)
	}
	metrics.ProviderCallsTotal.WithLabelValues("card", string(updated.Status)).Inc()
	return !pollable(updated.Status), nil
}

// settle decides whether a failed pass is worth retrying. Transient provider and storage errors are;
// rejections, escrow mismatches and lost state races end polling for the transaction.
func (p *Poller) settle(ctx context.Context, tx *models.Transaction, err error) (bool, error) {
	switch {
	case errors.Is(err, providers.ErrGatewayRejected):
		p.logger.WarnContext(ctx, "provider rejected payment, polling stopped", "transaction_id", tx.Id, "error", err)
		return true, nil
	case errors.Is(err, transactions.ErrEscrowMismatch),
		errors.Is(err, transactions.ErrReferenceMismatch),
		errors.Is(err, transactions.ErrInvalidState):
		p.logger.WarnContext(ctx, "reconciliation not applicable, polling stopped", "transaction_id", tx.Id, "error", err)
		return true, nil
	}
	return false, err
}

// newBackOff grows the wait between failed passes from Interval to MaxInterval with jitter.
// It never gives up; the stall alert decides when a human is told.
func newBackOff(cfg Config) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.Interval
	bo.MaxInterval = cfg.MaxInterval
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pollable reports whether a transaction in status still waits on provider truth.
func pollable(status models.TransactionStatus) bool {
	return status == models.PAYMENT_INITIATED || status == models.ESCROW_FUNDED
}
