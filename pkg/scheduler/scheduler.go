package scheduler

import (
	"context"
	"time"

	"github.com/chris/property-escrow/pkg/models"
)

// DisbursementRequest is the message placed on the disbursement queue once both counterparties
// have confirmed. The consumer re-reads the transaction, so the payload is informational.
type DisbursementRequest struct {
	TransactionID string               `json:"transaction_id"`
	EscrowID      string               `json:"escrow_id,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Commission    int64                `json:"commission"`
	NetAmount     int64                `json:"net_amount"`
	RequestedAt   time.Time            `json:"requested_at"`
}

// Scheduler defines the interface for a component that schedules a disbursement for later processing.
type Scheduler interface {
	// ScheduleDisbursement enqueues a disbursement for asynchronous processing after an optional delay.
	ScheduleDisbursement(ctx context.Context, req DisbursementRequest, delay time.Duration) error
}
