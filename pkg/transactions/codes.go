package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/property-escrow/pkg/metrics"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/notify"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/google/uuid"
)

// RequestCode opens (or reuses) the transaction for a property and buyer and sends the buyer a fresh
// verification code. A previously issued code stops matching as soon as the new one is stored.
func (s *Service) RequestCode(ctx context.Context, propertyID, buyerID string) (*models.Transaction, error) {
	property, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.SellerId == buyerID {
		return nil, ErrBuyerIsSeller
	}
	buyer, err := s.store.GetUser(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	open, err := s.openTransaction(ctx, property, buyerID)
	if err != nil {
		return nil, err
	}

	issued, err := s.codes.Issue(s.now())
	if err != nil {
		return nil, err
	}

	tx, _, err := s.mutate(ctx, open.Id, "request code", func(tx *models.Transaction) (change, error) {
		if err := apply(tx, EventCodeIssued); err != nil {
			return keep, err
		}
		expiresAt := issued.ExpiresAt
		tx.CodeHash = issued.Hash
		tx.CodeExpiresAt = &expiresAt
		tx.CodeAttempts = 0
		tx.CodeConsumedAt = nil
		return write, nil
	})
	if err != nil {
		return tx, err
	}

	err = s.notifier.SendCode(ctx, notify.CodeMessage{
		To:            buyer.Email,
		Name:          buyer.Name,
		TransactionID: tx.Id,
		PropertyTitle: tx.DraftSnapshot.Title,
		Code:          issued.Code,
		ExpiresAt:     issued.ExpiresAt,
	})
	if err != nil {
		return tx, fmt.Errorf("failed to deliver verification code: %w", err)
	}

	return tx, nil
}

// openTransaction returns the non-terminal transaction for the pair, creating a draft if there is none.
func (s *Service) openTransaction(ctx context.Context, property *models.Property, buyerID string) (*models.Transaction, error) {
	existing, err := s.store.FindOpenTransaction(ctx, property.Id, buyerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	tx := &models.Transaction{
		Id:         uuid.New().String(),
		PropertyId: property.Id,
		BuyerId:    buyerID,
		SellerId:   property.SellerId,
		DraftSnapshot: models.DraftSnapshot{
			Title:    property.Title,
			Price:    property.Price,
			Currency: property.Currency,
			PhotoURL: property.PhotoURL,
		},
		Amount:    property.Price,
		Currency:  property.Currency,
		Status:    models.DRAFT,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.CreateTransaction(ctx, tx)
	if errors.Is(err, storage.ErrConflict) {
		// Another request opened it first.
		return s.store.FindOpenTransaction(ctx, property.Id, buyerID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction created", "transaction_id", tx.Id, "property_id", tx.PropertyId, "buyer_id", buyerID)
	return tx, nil
}

// VerifyCode consumes the verification code and moves the transaction to verified.
// Failed attempts are counted; once the limit is reached the code is invalidated.
func (s *Service) VerifyCode(ctx context.Context, txID, code string) (*models.Transaction, error) {
	tx, _, err := s.mutate(ctx, txID, "verify code", func(tx *models.Transaction) (change, error) {
		now := s.now()

		if tx.CodeConsumedAt != nil {
			return keep, ErrCodeAlreadyUsed
		}
		if tx.Status != models.AWAITING_CODE {
			return keep, fmt.Errorf("%w: no code outstanding in status %s", ErrInvalidState, tx.Status)
		}
		if tx.CodeExpiresAt != nil && now.After(*tx.CodeExpiresAt) {
			return keep, ErrCodeExpired
		}
		if tx.CodeHash == "" || s.codes.Exhausted(tx.CodeAttempts) {
			return keep, ErrTooManyAttempts
		}

		ok, err := s.codes.Matches(tx.CodeHash, code)
		if err != nil {
			return keep, err
		}
		if !ok {
			tx.CodeAttempts++
			if s.codes.Exhausted(tx.CodeAttempts) {
				tx.CodeHash = ""
				return write, ErrTooManyAttempts
			}
			return write, ErrInvalidCode
		}

		if err := apply(tx, EventCodeVerified); err != nil {
			return keep, err
		}
		tx.CodeHash = ""
		tx.CodeExpiresAt = nil
		tx.CodeConsumedAt = &now
		return write, nil
	})

	metrics.CodeVerificationsTotal.WithLabelValues(verifyOutcome(err)).Inc()
	return tx, err
}

func verifyOutcome(err error) string {
	switch {
	case err == nil:
		return "verified"
	case errors.Is(err, ErrInvalidCode):
		return "invalid"
	case errors.Is(err, ErrCodeExpired):
		return "expired"
	case errors.Is(err, ErrCodeAlreadyUsed):
		return "already_used"
	case errors.Is(err, ErrTooManyAttempts):
		return "too_many_attempts"
	}
	return "error"
}
