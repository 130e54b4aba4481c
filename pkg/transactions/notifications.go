package transactions

import (
	"context"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/notify"
)

var announced = map[models.TransactionStatus]bool{
	models.PENDING_CONFIRMATION:  true,
	models.AWAITING_DISBURSEMENT: true,
	models.COMPLETED:             true,
	models.CANCELLED:             true,
	models.EXPIRED:               true,
	models.DISPUTED:              true,
}

// announce tells both counterparties about the transaction's new status. Failures are only logged.
func (s *Service) announce(ctx context.Context, tx *models.Transaction) {
	if !announced[tx.Status] {
		return
	}

	var to []string
	for _, id := range []string{tx.BuyerId, tx.SellerId} {
		user, err := s.store.GetUser(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to look up user for status update", "transaction_id", tx.Id, "user_id", id, "error", err)
			continue
		}
		if user.Email != "" {
			to = append(to, user.Email)
		}
	}

	err := s.notifier.SendStatusUpdate(ctx, notify.StatusMessage{
		To:            to,
		TransactionID: tx.Id,
		PropertyTitle: tx.DraftSnapshot.Title,
		Status:        tx.Status,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to send status update", "transaction_id", tx.Id, "status", tx.Status, "error", err)
	}
}
