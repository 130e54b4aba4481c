package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/storage"
)

// Confirm records that a counterparty is satisfied. Each role's flag is written independently, so
// concurrent buyer and seller confirmations both land. When both flags are set the transaction moves
// to awaiting_disbursement exactly once. Confirming again for the same role is a no-op.
func (s *Service) Confirm(ctx context.Context, txID string, role models.Role) (*models.Transaction, error) {
	if role != models.RoleBuyer && role != models.RoleSeller {
		return nil, ErrInvalidRole
	}

	tx, err := s.load(ctx, txID, "confirm")
	if err != nil {
		return tx, err
	}
	if tx.Confirmed(role) {
		if tx.Status == models.PENDING_CONFIRMATION && tx.IsBuyerConfirmed && tx.IsSellerConfirmed {
			// A previous call recorded both flags but did not finish the transition.
			return s.closeConfirmation(ctx, txID, EventBothConfirmed)
		}
		return tx, nil
	}
	if tx.Status != models.PENDING_CONFIRMATION {
		err := fmt.Errorf("%w: cannot confirm in status %s", ErrInvalidState, tx.Status)
		s.rejected(ctx, "confirm", tx, err)
		return tx, err
	}

	tx, err = s.store.SetConfirmation(ctx, txID, role, s.now())
	if errors.Is(err, storage.ErrConflict) {
		tx, err = s.store.GetTransaction(ctx, txID)
		if err != nil {
			return nil, err
		}
		err = fmt.Errorf("%w: transaction moved to %s", ErrInvalidState, tx.Status)
		s.rejected(ctx, "confirm", tx, err)
		return tx, err
	}
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "confirmation recorded", "transaction_id", txID, "role", role)

	if !tx.IsBuyerConfirmed || !tx.IsSellerConfirmed {
		return tx, nil
	}
	return s.closeConfirmation(ctx, txID, EventBothConfirmed)
}

// OverrideConfirmation lets an operator move a transaction to awaiting_disbursement without both confirmations.
func (s *Service) OverrideConfirmation(ctx context.Context, txID string) (*models.Transaction, error) {
	tx, err := s.load(ctx, txID, "override confirmation")
	if err != nil {
		return tx, err
	}
	if tx.Status != models.PENDING_CONFIRMATION {
		err := fmt.Errorf("%w: cannot override in status %s", ErrInvalidState, tx.Status)
		s.rejected(ctx, "override confirmation", tx, err)
		return tx, err
	}
	s.logger.WarnContext(ctx, "confirmation overridden by operator", "transaction_id", txID,
		"buyer_confirmed", tx.IsBuyerConfirmed, "seller_confirmed", tx.IsSellerConfirmed)
	return s.closeConfirmation(ctx, txID, EventOverride)
}

// closeConfirmation computes the payout, moves to awaiting_disbursement and enqueues the disbursement.
// Only the caller whose write wins schedules the payout.
func (s *Service) closeConfirmation(ctx context.Context, txID string, ev Event) (*models.Transaction, error) {
	tx, changed, err := s.mutate(ctx, txID, string(ev), func(tx *models.Transaction) (change, error) {
		if tx.Status == models.AWAITING_DISBURSEMENT || tx.Status == models.COMPLETED {
			return keep, nil
		}
		if ev == EventBothConfirmed && (!tx.IsBuyerConfirmed || !tx.IsSellerConfirmed) {
			return keep, nil
		}
		if err := apply(tx, ev); err != nil {
			return keep, err
		}
		if err := s.recordPayout(tx); err != nil {
			return keep, err
		}
		return write, nil
	})
	if err != nil || !changed {
		return tx, err
	}

	s.announce(ctx, tx)
	if err := s.ScheduleDisbursement(ctx, tx); err != nil {
		// The stuck-disbursement sweep picks it up again.
		s.logger.ErrorContext(ctx, "CRITICAL: transaction awaiting disbursement but failed to enqueue", "transaction_id", tx.Id, "error", err)
	}
	return tx, nil
}
