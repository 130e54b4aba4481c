package transactions

import (
	"context"
	"fmt"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/notify"
	"github.com/chris/property-escrow/pkg/providers"
)

// Cancel abandons a transaction before any funds are held. Once the provider holds funds,
// cancellation has to go through a provider refund instead.
func (s *Service) Cancel(ctx context.Context, txID string) (*models.Transaction, error) {
	return s.abandon(ctx, txID, EventCancel)
}

// Expire abandons a transaction that timed out before any funds were held.
func (s *Service) Expire(ctx context.Context, txID string) (*models.Transaction, error) {
	return s.abandon(ctx, txID, EventExpire)
}

func (s *Service) abandon(ctx context.Context, txID string, ev Event) (*models.Transaction, error) {
	tx, err := s.load(ctx, txID, string(ev))
	if err != nil {
		return tx, err
	}
	if !Allowed(tx.Status, ev) {
		err := fmt.Errorf("%w: cannot %s in status %s", ErrInvalidState, ev, tx.Status)
		s.rejected(ctx, string(ev), tx, err)
		return tx, err
	}

	if tx.Status == models.PAYMENT_INITIATED {
		if err := s.closeCheckout(ctx, tx); err != nil {
			return tx, err
		}
	}

	tx, changed, err := s.mutate(ctx, txID, string(ev), func(tx *models.Transaction) (change, error) {
		if err := apply(tx, ev); err != nil {
			return keep, err
		}
		tx.CodeHash = ""
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

// closeCheckout makes sure a payment_initiated transaction was not paid before it is abandoned,
// and stops the buyer from paying into the checkout afterwards.
func (s *Service) closeCheckout(ctx context.Context, tx *models.Transaction) error {
	switch {
	case tx.EscrowId != "" && s.escrow != nil:
		status, err := s.escrow.GetEscrowStatus(ctx, tx.EscrowId)
		if err != nil {
			return err
		}
		if status != providers.EscrowPending && status != providers.EscrowCancelled {
			return fmt.Errorf("%w: escrow is %s, use a provider refund", ErrInvalidState, status)
		}
		if status == providers.EscrowPending {
			return s.escrow.CancelEscrowSession(ctx, tx.EscrowId)
		}
	case tx.PaymentReference != "" && s.gateway != nil:
		result, err := s.gateway.VerifyPayment(ctx, tx.PaymentReference)
		if err != nil {
			return err
		}
		if result.Status == providers.PaymentSuccess {
			return fmt.Errorf("%w: payment %s already succeeded", ErrInvalidState, tx.PaymentReference)
		}
	}
	return nil
}

// RaiseDispute freezes a funded transaction for manual resolution.
func (s *Service) RaiseDispute(ctx context.Context, txID, reason string) (*models.Transaction, error) {
	tx, changed, err := s.mutate(ctx, txID, "dispute", func(tx *models.Transaction) (change, error) {
		if tx.Status == models.DISPUTED {
			return keep, nil
		}
		if err := apply(tx, EventDispute); err != nil {
			return keep, err
		}
		tx.DisputeReason = reason
		return write, nil
	})
	if err != nil {
		return tx, err
	}
	if changed {
		s.alert(ctx, notify.AlertDisputeRaised, tx.Id, reason)
		s.announce(ctx, tx)
	}
	return tx, nil
}
