package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/storage"
)

// InitiatePayment opens the provider checkout for a verified transaction and moves it to
// payment_initiated. The transaction id is the provider idempotency key, so a retried call after a
// lost response cannot open a second charge. Any call after the first successful one fails with ErrInvalidState.
func (s *Service) InitiatePayment(ctx context.Context, txID, currency string, method models.PaymentMethod) (*models.Transaction, error) {
	if method == "" {
		method = models.PaymentMethodEscrow
	}

	tx, err := s.load(ctx, txID, "initiate payment")
	if err != nil {
		return tx, err
	}
	if !Allowed(tx.Status, EventPaymentInitiated) {
		err := fmt.Errorf("%w: cannot initiate payment in status %s", ErrInvalidState, tx.Status)
		s.rejected(ctx, "initiate payment", tx, err)
		return tx, err
	}
	if currency != "" && !strings.EqualFold(currency, tx.Currency) {
		return tx, fmt.Errorf("%w: requested %s, agreed %s", ErrCurrencyMismatch, currency, tx.Currency)
	}

	buyerEmail := ""
	if buyer, err := s.store.GetUser(ctx, tx.BuyerId); err == nil {
		buyerEmail = buyer.Email
	} else if method == models.PaymentMethodCard {
		return tx, err
	}

	var escrowID, reference, checkoutURL string
	paid := false
	switch method {
	case models.PaymentMethodEscrow:
		if s.escrow == nil {
			return tx, fmt.Errorf("%w: no escrow provider configured", providers.ErrGatewayRejected)
		}
		session, err := s.escrow.CreateEscrowSession(ctx, providers.EscrowRequest{
			TransactionID: tx.Id,
			PropertyTitle: tx.DraftSnapshot.Title,
			Amount:        tx.Amount,
			Currency:      tx.Currency,
			BuyerEmail:    buyerEmail,
		})
		if err != nil {
			return tx, err
		}
		escrowID, checkoutURL = session.EscrowID, session.CheckoutURL
	case models.PaymentMethodCard:
		if s.gateway == nil {
			return tx, fmt.Errorf("%w: no card gateway configured", providers.ErrGatewayRejected)
		}
		charge, err := s.gateway.InitializePayment(ctx, providers.PaymentRequest{
			Reference:  tx.Id,
			Amount:     tx.Amount,
			Currency:   tx.Currency,
			PayerEmail: buyerEmail,
			Metadata: map[string]string{
				"transaction_id": tx.Id,
				"property_id":    tx.PropertyId,
			},
		})
		if err != nil {
			return tx, err
		}
		if !charge.Paid && charge.RedirectURL == "" {
			return tx, fmt.Errorf("%w: charge %s has no checkout url", providers.ErrGatewayRejected, charge.Reference)
		}
		reference, checkoutURL, paid = charge.Reference, charge.RedirectURL, charge.Paid
	default:
		return tx, fmt.Errorf("%w: unknown payment method %q", providers.ErrGatewayRejected, method)
	}

	tx, _, err = s.mutate(ctx, txID, "initiate payment", func(tx *models.Transaction) (change, error) {
		if err := apply(tx, EventPaymentInitiated); err != nil {
			return keep, err
		}
		tx.PaymentMethod = method
		tx.EscrowId = escrowID
		tx.PaymentReference = reference
		tx.CheckoutURL = checkoutURL
		return write, nil
	})
	if err != nil {
		return tx, err
	}

	if paid {
		// A retry found the charge already settled.
		return s.fund(ctx, tx.Id, "initiate payment")
	}
	if s.watcher != nil {
		s.watcher.Watch(tx.Id)
	}
	return tx, nil
}

// LinkPayment reconciles a card charge made outside the escrow checkout. The charge must belong to
// the transaction: its reference is the transaction id or its metadata names the transaction.
// A successful charge moves the transaction to pending_confirmation and claims the reference so no
// other transaction can link it. A pending charge leaves the transaction untouched; a failed one is ErrGatewayRejected.
func (s *Service) LinkPayment(ctx context.Context, txID, reference string) (*models.Transaction, error) {
	tx, err := s.load(ctx, txID, "link payment")
	if err != nil {
		return tx, err
	}

	if tx.PaymentReference != "" && tx.PaymentReference != reference {
		s.logger.ErrorContext(ctx, "payment reference mismatch", "transaction_id", tx.Id, "stored", tx.PaymentReference, "received", reference)
		return tx, ErrReferenceMismatch
	}
	if tx.PaymentReference == reference && afterFunding(tx.Status) {
		// Already paid; finish an interrupted funding walk if there is one.
		return s.fund(ctx, txID, "link payment")
	}
	if tx.Status != models.VERIFIED && tx.Status != models.PAYMENT_INITIATED {
		err := fmt.Errorf("%w: cannot link payment in status %s", ErrInvalidState, tx.Status)
		s.rejected(ctx, "link payment", tx, err)
		return tx, err
	}
	if tx.EscrowId != "" {
		err := fmt.Errorf("%w: transaction is paid through escrow %s", ErrInvalidState, tx.EscrowId)
		s.rejected(ctx, "link payment", tx, err)
		return tx, err
	}
	if s.gateway == nil {
		return tx, fmt.Errorf("%w: no card gateway configured", providers.ErrGatewayRejected)
	}

	result, err := s.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		return tx, err
	}
	if owner := chargeOwner(result, reference); owner != tx.Id {
		s.logger.ErrorContext(ctx, "linked payment belongs to another transaction",
			"transaction_id", tx.Id, "reference", reference, "charge_transaction_id", owner)
		return tx, fmt.Errorf("%w: charge %s is not for this transaction", ErrReferenceMismatch, reference)
	}

	switch result.Status {
	case providers.PaymentPending:
		return tx, nil
	case providers.PaymentFailed:
		return tx, fmt.Errorf("%w: payment %s failed", providers.ErrGatewayRejected, reference)
	}

	if result.Amount != tx.Amount || !strings.EqualFold(result.Currency, tx.Currency) {
		s.logger.ErrorContext(ctx, "linked payment does not cover transaction",
			"transaction_id", tx.Id, "reference", reference,
			"amount", result.Amount, "currency", result.Currency,
			"expected_amount", tx.Amount, "expected_currency", tx.Currency)
		return tx, fmt.Errorf("%w: charge of %d %s", ErrReferenceMismatch, result.Amount, result.Currency)
	}

	if err := s.store.ReservePaymentReference(ctx, reference, tx.Id); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			s.logger.ErrorContext(ctx, "payment reference already linked", "transaction_id", tx.Id, "reference", reference)
			return tx, fmt.Errorf("%w: charge %s is linked to another transaction", ErrReferenceMismatch, reference)
		}
		return tx, err
	}

	tx, _, err = s.mutate(ctx, txID, "link payment", func(tx *models.Transaction) (change, error) {
		if tx.Status != models.VERIFIED {
			return keep, nil
		}
		if err := apply(tx, EventPaymentInitiated); err != nil {
			return keep, err
		}
		tx.PaymentMethod = models.PaymentMethodCard
		tx.PaymentReference = reference
		return write, nil
	})
	if err != nil {
		return tx, err
	}

	return s.fund(ctx, tx.Id, "link payment")
}

// chargeOwner returns the transaction a verified charge was made for.
// Charges opened by InitiatePayment use the transaction id as reference.
func chargeOwner(result *providers.PaymentResult, reference string) string {
	if result.TransactionID != "" {
		return result.TransactionID
	}
	return reference
}

// fund moves a paid transaction through escrow_funded into pending_confirmation.
// Each step is its own conditional write so a crash in between is resumed by the next call,
// and a concurrent caller that already advanced the transaction makes this a no-op.
func (s *Service) fund(ctx context.Context, txID, op string) (*models.Transaction, error) {
	tx, moved, err := s.walk(ctx, txID, op, func(tx *models.Transaction) (Event, bool, error) {
		switch tx.Status {
		case models.PAYMENT_INITIATED:
			return EventFunded, false, nil
		case models.ESCROW_FUNDED:
			return EventAwaitConfirm, false, nil
		}
		if afterFunding(tx.Status) {
			return "", true, nil
		}
		return "", false, fmt.Errorf("%w: cannot fund in status %s", ErrInvalidState, tx.Status)
	})
	if err != nil {
		return tx, err
	}
	if moved {
		s.announce(ctx, tx)
	}
	return tx, nil
}

// afterFunding reports whether funds have already been observed for a transaction in status.
func afterFunding(status models.TransactionStatus) bool {
	switch status {
	case models.ESCROW_FUNDED, models.PENDING_CONFIRMATION, models.AWAITING_DISBURSEMENT, models.COMPLETED:
		return true
	}
	return false
}
