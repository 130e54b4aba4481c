package transactions

import (
	"context"
	"fmt"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/notify"
)

// OnProviderFunded records that the provider holds the buyer's funds and opens confirmation.
// The escrow id must equal the stored one exactly, otherwise nothing changes and ErrEscrowMismatch is returned.
func (s *Service) OnProviderFunded(ctx context.Context, txID, providerEscrowID string) (*models.Transaction, error) {
	tx, err := s.load(ctx, txID, "provider funded")
	if err != nil {
		return tx, err
	}
	if err := s.checkEscrow(ctx, tx, providerEscrowID); err != nil {
		return tx, err
	}
	return s.fund(ctx, txID, "provider funded")
}

// OnProviderReleased handles funds released by the provider itself. The transaction is walked along
// the legal edges to completed, computing the payout split if it was not recorded yet.
func (s *Service) OnProviderReleased(ctx context.Context, txID, providerEscrowID, payoutReference string) (*models.Transaction, error) {
	tx, err := s.load(ctx, txID, "provider released")
	if err != nil {
		return tx, err
	}
	if err := s.checkEscrow(ctx, tx, providerEscrowID); err != nil {
		return tx, err
	}
	if tx.Status == models.DISPUTED {
		s.alert(ctx, notify.AlertDisputeRaised, tx.Id, fmt.Sprintf("provider released escrow %s while the transaction is disputed", providerEscrowID))
		return tx, fmt.Errorf("%w: transaction is disputed", ErrInvalidState)
	}

	tx, moved, err := s.walk(ctx, txID, "provider released", func(tx *models.Transaction) (Event, bool, error) {
		switch tx.Status {
		case models.PAYMENT_INITIATED:
			return EventFunded, false, nil
		case models.ESCROW_FUNDED:
			return EventAwaitConfirm, false, nil
		case models.PENDING_CONFIRMATION:
			if err := s.recordPayout(tx); err != nil {
				return "", false, err
			}
			return EventProviderReleased, false, nil
		case models.AWAITING_DISBURSEMENT:
			if err := s.recordPayout(tx); err != nil {
				return "", false, err
			}
			s.markDisbursed(tx, payoutReference)
			return EventDisbursed, false, nil
		case models.COMPLETED:
			return "", true, nil
		}
		return "", false, fmt.Errorf("%w: cannot release in status %s", ErrInvalidState, tx.Status)
	})
	if err != nil {
		return tx, err
	}
	if moved {
		s.announce(ctx, tx)
	}
	return tx, nil
}

// OnProviderRefunded cancels a transaction whose funds the provider returned to the buyer.
func (s *Service) OnProviderRefunded(ctx context.Context, txID, providerEscrowID string) (*models.Transaction, error) {
	tx, err := s.load(ctx, txID, "provider refunded")
	if err != nil {
		return tx, err
	}
	if err := s.checkEscrow(ctx, tx, providerEscrowID); err != nil {
		return tx, err
	}

	tx, moved, err := s.walk(ctx, txID, "provider refunded", func(tx *models.Transaction) (Event, bool, error) {
		if tx.Status == models.CANCELLED {
			return "", true, nil
		}
		if tx.Status == models.DISPUTED {
			return "", false, fmt.Errorf("%w: transaction is disputed", ErrInvalidState)
		}
		return EventProviderRefunded, false, nil
	})
	if err != nil {
		return tx, err
	}
	if moved {
		s.announce(ctx, tx)
	}
	return tx, nil
}

// checkEscrow rejects provider events that do not name the stored escrow and freezes the transaction.
// The status is left as it was for the operator to investigate.
func (s *Service) checkEscrow(ctx context.Context, tx *models.Transaction, providerEscrowID string) error {
	if tx.EscrowId != "" && tx.EscrowId == providerEscrowID {
		return nil
	}
	s.logger.ErrorContext(ctx, "escrow id mismatch, transaction frozen",
		"transaction_id", tx.Id, "status", tx.Status, "stored_escrow_id", tx.EscrowId, "provider_escrow_id", providerEscrowID)
	if err := s.freeze(ctx, tx.Id); err != nil {
		s.logger.ErrorContext(ctx, "failed to freeze transaction", "transaction_id", tx.Id, "error", err)
	}
	s.alert(ctx, notify.AlertEscrowMismatch, tx.Id,
		fmt.Sprintf("provider reported escrow %q but transaction holds %q (status %s)", providerEscrowID, tx.EscrowId, tx.Status))
	return ErrEscrowMismatch
}
