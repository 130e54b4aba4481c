// Package transactions owns the property sale Transaction and the state machine that moves it
// from code verification through escrow funding, confirmation and disbursement.
package transactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/property-escrow/pkg/commission"
	"github.com/chris/property-escrow/pkg/metrics"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/notify"
	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/scheduler"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/chris/property-escrow/pkg/verification"
)

// maxConflictRetries bounds how often a write that lost a compare-and-swap is re-read and retried.
const maxConflictRetries = 3

// Watcher is told about transactions that now wait on a provider.
type Watcher interface {
	Watch(txID string)
}

// Dependencies are the collaborators of the Service. Scheduler and Watcher are optional.
type Dependencies struct {
	Store      storage.Storage
	Escrow     providers.EscrowProvider
	Gateway    providers.PaymentGateway
	Codes      *verification.Issuer
	Commission *commission.Calculator
	Scheduler  scheduler.Scheduler
	Notifier   notify.Notifier
	Logger     *slog.Logger
	Clock      func() time.Time

	// DisbursementDelay is the cooling-off period between final confirmation and payout.
	DisbursementDelay time.Duration
}

// Service implements the transaction operations.
type Service struct {
	store             storage.Storage
	escrow            providers.EscrowProvider
	gateway           providers.PaymentGateway
	codes             *verification.Issuer
	commission        *commission.Calculator
	scheduler         scheduler.Scheduler
	notifier          notify.Notifier
	watcher           Watcher
	logger            *slog.Logger
	now               func() time.Time
	disbursementDelay time.Duration
}

// NewService creates a Service. Missing optional collaborators get defaults.
func NewService(d Dependencies) (*Service, error) {
	if d.Store == nil {
		return nil, errors.New("transactions: store is required")
	}
	if d.Codes == nil {
		d.Codes = verification.NewIssuer()
	}
	if d.Commission == nil {
		calc, err := commission.NewCalculator(commission.DefaultRate)
		if err != nil {
			return nil, err
		}
		d.Commission = calc
	}
	if d.Notifier == nil {
		d.Notifier = &notify.LogNotifier{Logger: d.Logger}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}

	return &Service{
		store:             d.Store,
		escrow:            d.Escrow,
		gateway:           d.Gateway,
		codes:             d.Codes,
		commission:        d.Commission,
		scheduler:         d.Scheduler,
		notifier:          d.Notifier,
		logger:            d.Logger,
		now:               func() time.Time { return d.Clock().UTC() },
		disbursementDelay: d.DisbursementDelay,
	}, nil
}

// SetWatcher registers the component that polls providers for initiated payments.
func (s *Service) SetWatcher(w Watcher) {
	s.watcher = w
}

// Get returns a transaction by id.
func (s *Service) Get(ctx context.Context, txID string) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, txID)
}

// GetLatestForUser returns the most recent transaction on a property where the user is buyer or seller.
func (s *Service) GetLatestForUser(ctx context.Context, propertyID, userID string) (*models.Transaction, error) {
	return s.store.GetLatestForUser(ctx, propertyID, userID)
}

// GetEscrowStatus asks the escrow provider for the current state of held funds.
func (s *Service) GetEscrowStatus(ctx context.Context, escrowID string) (providers.EscrowStatus, error) {
	if s.escrow == nil {
		return "", fmt.Errorf("%w: no escrow provider configured", providers.ErrGatewayUnavailable)
	}
	return s.escrow.GetEscrowStatus(ctx, escrowID)
}

// load reads a transaction an operation is about to act on. A frozen transaction is returned with ErrFrozen.
func (s *Service) load(ctx context.Context, txID, op string) (*models.Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Frozen {
		s.rejected(ctx, op, tx, ErrFrozen)
		return tx, ErrFrozen
	}
	return tx, nil
}

// change is the result of a mutation callback.
type change int

const (
	// keep leaves the stored transaction untouched.
	keep change = iota
	// write persists the modified transaction.
	write
)

// mutate reads the transaction, lets fn modify it, and writes it back conditioned on the status and
// version that were read. A lost race is retried with a fresh read so fn always sees current state.
// If fn returns write together with an error, the write is made and the error is returned after it.
// fn is never called for a frozen transaction.
func (s *Service) mutate(ctx context.Context, txID, op string, fn func(tx *models.Transaction) (change, error)) (*models.Transaction, bool, error) {
	for attempt := 0; ; attempt++ {
		tx, err := s.load(ctx, txID, op)
		if err != nil {
			return tx, false, err
		}
		from := tx.Status

		c, fnErr := fn(tx)
		if c == keep {
			if fnErr != nil {
				s.rejected(ctx, op, tx, fnErr)
			}
			return tx, false, fnErr
		}

		tx.UpdatedAt = s.now()
		err = s.store.UpdateTransaction(ctx, tx, from)
		if err == nil {
			if from != tx.Status {
				metrics.TransitionsTotal.WithLabelValues(string(from), string(tx.Status)).Inc()
				s.logger.InfoContext(ctx, "transaction transitioned", "transaction_id", tx.Id, "operation", op, "from", from, "to", tx.Status)
			}
			return tx, true, fnErr
		}
		if !errors.Is(err, storage.ErrConflict) || attempt >= maxConflictRetries {
			return nil, false, fmt.Errorf("failed to %s transaction %s: %w", op, txID, err)
		}
		s.logger.DebugContext(ctx, "retrying after concurrent update", "transaction_id", txID, "operation", op, "attempt", attempt+1)
	}
}

// walk repeatedly asks next for the event to apply and writes it, until next reports done or fails.
// next may also set fields on tx before the event is applied. moved reports whether this call wrote anything.
func (s *Service) walk(ctx context.Context, txID, op string, next func(tx *models.Transaction) (Event, bool, error)) (*models.Transaction, bool, error) {
	moved := false
	for {
		tx, changed, err := s.mutate(ctx, txID, op, func(tx *models.Transaction) (change, error) {
			event, done, err := next(tx)
			if err != nil || done {
				return keep, err
			}
			if err := apply(tx, event); err != nil {
				return keep, err
			}
			return write, nil
		})
		if err != nil || !changed {
			return tx, moved, err
		}
		moved = true
	}
}

// freeze sets the frozen flag without touching the status.
func (s *Service) freeze(ctx context.Context, txID string) error {
	for attempt := 0; ; attempt++ {
		tx, err := s.store.GetTransaction(ctx, txID)
		if err != nil {
			return err
		}
		if tx.Frozen {
			return nil
		}
		tx.Frozen = true
		tx.UpdatedAt = s.now()
		err = s.store.UpdateTransaction(ctx, tx, tx.Status)
		if err == nil {
			metrics.FrozenTotal.Inc()
			return nil
		}
		if !errors.Is(err, storage.ErrConflict) || attempt >= maxConflictRetries {
			return fmt.Errorf("failed to freeze transaction %s: %w", txID, err)
		}
	}
}

func (s *Service) rejected(ctx context.Context, op string, tx *models.Transaction, err error) {
	if !errors.Is(err, ErrInvalidState) {
		return
	}
	metrics.RejectedTransitionsTotal.WithLabelValues(op).Inc()
	s.logger.WarnContext(ctx, "transition rejected", "transaction_id", tx.Id, "operation", op, "status", tx.Status, "error", err)
}

// alert raises an operator alert. Delivery failures are logged and swallowed.
func (s *Service) alert(ctx context.Context, kind notify.AlertKind, txID, detail string) {
	if err := s.notifier.AlertOperator(ctx, notify.Alert{Kind: kind, TransactionID: txID, Detail: detail}); err != nil {
		s.logger.ErrorContext(ctx, "failed to alert operator", "kind", kind, "transaction_id", txID, "error", err)
	}
}
