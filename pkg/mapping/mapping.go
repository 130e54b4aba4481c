package mapping

import (
	"github.com/chris/property-escrow/pkg/api"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/providers"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
// Verification secrets never leave the domain model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	out := &api.Transaction{
		Id:                tx.Id,
		PropertyId:        tx.PropertyId,
		BuyerId:           tx.BuyerId,
		SellerId:          tx.SellerId,
		Property:          toApiDraftSnapshot(tx.DraftSnapshot),
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		Status:            api.TransactionStatus(tx.Status),
		CodeExpiresAt:     tx.CodeExpiresAt,
		PaymentReference:  optional(tx.PaymentReference),
		EscrowId:          optional(tx.EscrowId),
		CheckoutUrl:       optional(tx.CheckoutURL),
		IsBuyerConfirmed:  tx.IsBuyerConfirmed,
		IsSellerConfirmed: tx.IsSellerConfirmed,
		DisputeReason:     optional(tx.DisputeReason),
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
	if tx.Frozen {
		frozen := true
		out.Frozen = &frozen
	}
	if tx.PaymentMethod != "" {
		method := api.PaymentMethod(tx.PaymentMethod)
		out.PaymentMethod = &method
	}
	if p := tx.PayoutSnapshot; p != nil {
		out.Payout = &api.Payout{
			Commission:      p.Commission,
			NetAmount:       p.NetAmount,
			PayoutReference: optional(p.PayoutReference),
			ScheduledAt:     p.ScheduledAt,
			DisbursedAt:     p.DisbursedAt,
		}
	}
	return out
}

func toApiDraftSnapshot(s models.DraftSnapshot) api.DraftSnapshot {
	return api.DraftSnapshot{
		Title:    s.Title,
		Price:    s.Price,
		Currency: s.Currency,
		PhotoUrl: optional(s.PhotoURL),
	}
}

// ToApiEscrowStatus converts a provider escrow status to its API response.
func ToApiEscrowStatus(escrowID string, status providers.EscrowStatus) *api.EscrowStatusResponse {
	return &api.EscrowStatusResponse{
		EscrowId: escrowID,
		Status:   api.EscrowStatus(status),
	}
}

// ToDomainPaymentMethod returns the requested method, defaulting to escrow.
func ToDomainPaymentMethod(method *api.PaymentMethod) models.PaymentMethod {
	if method == nil || *method == "" {
		return models.PaymentMethodEscrow
	}
	return models.PaymentMethod(*method)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
