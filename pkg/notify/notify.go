// Package notify delivers verification codes, status updates and operator alerts out of band.
package notify

import (
	"context"
	"time"

	"github.com/chris/property-escrow/pkg/models"
)

// AlertKind classifies an operator alert.
type AlertKind string

const (
	AlertReconciliationStalled AlertKind = "reconciliation_stalled"
	AlertEscrowMismatch        AlertKind = "escrow_mismatch"
	AlertManualPayout          AlertKind = "manual_payout"
	AlertDisbursementFailed    AlertKind = "disbursement_failed"
	AlertDisputeRaised         AlertKind = "dispute_raised"
)

// CodeMessage carries a verification code to the buyer.
type CodeMessage struct {
	To            string
	Name          string
	TransactionID string
	PropertyTitle string
	Code          string
	ExpiresAt     time.Time
}

// StatusMessage tells the counterparties that a transaction moved.
type StatusMessage struct {
	To            []string
	TransactionID string
	PropertyTitle string
	Status        models.TransactionStatus
}

// Alert is an operator-visible event that needs a human.
type Alert struct {
	Kind          AlertKind
	TransactionID string
	Detail        string
}

// Notifier defines the interface for out-of-band delivery.
type Notifier interface {
	SendCode(ctx context.Context, msg CodeMessage) error
	SendStatusUpdate(ctx context.Context, msg StatusMessage) error
	AlertOperator(ctx context.Context, alert Alert) error
}
