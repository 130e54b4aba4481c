package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/notify"
	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/scheduler"
)

// recordPayout computes the commission split once. An existing snapshot is never recomputed.
func (s *Service) recordPayout(tx *models.Transaction) error {
	if tx.PayoutSnapshot != nil {
		return nil
	}
	split, err := s.commission.Compute(tx.Amount)
	if err != nil {
		return fmt.Errorf("failed to compute payout for transaction %s: %w", tx.Id, err)
	}
	tx.PayoutSnapshot = &models.PayoutSnapshot{
		Commission:  split.Commission,
		NetAmount:   split.NetAmount,
		ScheduledAt: s.now().Add(s.disbursementDelay),
	}
	return nil
}

func (s *Service) markDisbursed(tx *models.Transaction, payoutReference string) {
	now := s.now()
	tx.PayoutSnapshot.PayoutReference = payoutReference
	tx.PayoutSnapshot.DisbursedAt = &now
}

// ScheduleDisbursement enqueues the payout for a transaction awaiting disbursement.
func (s *Service) ScheduleDisbursement(ctx context.Context, tx *models.Transaction) error {
	if s.scheduler == nil {
		s.logger.WarnContext(ctx, "no disbursement scheduler configured, waiting for manual payout", "transaction_id", tx.Id)
		return nil
	}
	if tx.Status != models.AWAITING_DISBURSEMENT || tx.PayoutSnapshot == nil {
		return fmt.Errorf("%w: cannot schedule disbursement in status %s", ErrInvalidState, tx.Status)
	}

	req := scheduler.DisbursementRequest{
		TransactionID: tx.Id,
		EscrowID:      tx.EscrowId,
		PaymentMethod: tx.PaymentMethod,
		Commission:    tx.PayoutSnapshot.Commission,
		NetAmount:     tx.PayoutSnapshot.NetAmount,
		RequestedAt:   s.now(),
	}
	delay := tx.PayoutSnapshot.ScheduledAt.Sub(s.now())
	return s.scheduler.ScheduleDisbursement(ctx, req, delay)
}

// Disburse pays out a transaction awaiting disbursement. Escrow funds are released at the provider
// and the transaction completed; card payments are handed to an operator for a manual payout.
// Completed transactions are acknowledged without another release.
func (s *Service) Disburse(ctx context.Context, txID string) (*models.Transaction, error) {
	tx, err := s.load(ctx, txID, "disburse")
	if err != nil {
		return tx, err
	}
	if tx.Status == models.COMPLETED {
		return tx, nil
	}
	if tx.Status != models.AWAITING_DISBURSEMENT || tx.PayoutSnapshot == nil {
		err := fmt.Errorf("%w: cannot disburse in status %s", ErrInvalidState, tx.Status)
		s.rejected(ctx, "disburse", tx, err)
		return tx, err
	}
	if due := tx.PayoutSnapshot.ScheduledAt; s.now().Before(due) {
		return tx, fmt.Errorf("%w: due at %s", ErrNotDue, due.Format(time.RFC3339))
	}

	if tx.PaymentMethod == models.PaymentMethodCard || tx.EscrowId == "" {
		s.alert(ctx, notify.AlertManualPayout, tx.Id,
			fmt.Sprintf("pay %d %s to seller %s (commission %d) and mark the transaction disbursed",
				tx.PayoutSnapshot.NetAmount, tx.Currency, tx.SellerId, tx.PayoutSnapshot.Commission))
		return tx, nil
	}
	if s.escrow == nil {
		return tx, fmt.Errorf("%w: no escrow provider configured", providers.ErrGatewayUnavailable)
	}

	payoutReference, err := s.escrow.ReleaseEscrow(ctx, tx.EscrowId, providers.Payout{
		TransactionID: tx.Id,
		Commission:    tx.PayoutSnapshot.Commission,
		NetAmount:     tx.PayoutSnapshot.NetAmount,
	})
	if err != nil {
		return tx, fmt.Errorf("failed to release escrow for transaction %s: %w", tx.Id, err)
	}

	return s.OnDisbursed(ctx, txID, payoutReference)
}

// OnDisbursed completes a transaction once the payout has been made.
// Repeating the call with the same payout reference returns the completed transaction.
func (s *Service) OnDisbursed(ctx context.Context, txID, payoutReference string) (*models.Transaction, error) {
	tx, changed, err := s.mutate(ctx, txID, "disbursed", func(tx *models.Transaction) (change, error) {
		if tx.Status == models.COMPLETED && tx.PayoutSnapshot != nil && tx.PayoutSnapshot.PayoutReference == payoutReference {
			return keep, nil
		}
		if err := apply(tx, EventDisbursed); err != nil {
			return keep, err
		}
		if err := s.recordPayout(tx); err != nil {
			return keep, err
		}
		s.markDisbursed(tx, payoutReference)
		return write, nil
	})
	if err != nil {
		return tx, err
	}
	if changed {
		s.announce(ctx, tx)
	}
	return tx, nil
}
