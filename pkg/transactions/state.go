package transactions

import (
	"fmt"

	"github.com/chris/property-escrow/pkg/models"
)

// Event is a named trigger of the transaction state machine. Every status change goes through
// Transition with one of these events; nothing assigns Status directly.
type Event string

const (
	EventCodeIssued       Event = "code_issued"
	EventCodeVerified     Event = "code_verified"
	EventPaymentInitiated Event = "payment_initiated"
	EventFunded           Event = "funded"
	EventAwaitConfirm     Event = "await_confirmation"
	EventBothConfirmed    Event = "both_confirmed"
	EventOverride         Event = "override_confirmation"
	EventProviderReleased Event = "provider_released"
	EventDisbursed        Event = "disbursed"
	EventCancel           Event = "cancel"
	EventExpire           Event = "expire"
	EventDispute          Event = "dispute"
	EventProviderRefunded Event = "provider_refunded"
)

type edge struct {
	from []models.TransactionStatus
	to   models.TransactionStatus
}

// Statuses in which no funds are held by a provider yet.
var beforeFunding = []models.TransactionStatus{
	models.DRAFT, models.AWAITING_CODE, models.VERIFIED, models.PAYMENT_INITIATED,
}

var edges = map[Event]edge{
	EventCodeIssued:       {from: []models.TransactionStatus{models.DRAFT, models.AWAITING_CODE}, to: models.AWAITING_CODE},
	EventCodeVerified:     {from: []models.TransactionStatus{models.AWAITING_CODE}, to: models.VERIFIED},
	EventPaymentInitiated: {from: []models.TransactionStatus{models.VERIFIED}, to: models.PAYMENT_INITIATED},
	EventFunded:           {from: []models.TransactionStatus{models.PAYMENT_INITIATED}, to: models.ESCROW_FUNDED},
	EventAwaitConfirm:     {from: []models.TransactionStatus{models.ESCROW_FUNDED}, to: models.PENDING_CONFIRMATION},
	EventBothConfirmed:    {from: []models.TransactionStatus{models.PENDING_CONFIRMATION}, to: models.AWAITING_DISBURSEMENT},
	EventOverride:         {from: []models.TransactionStatus{models.PENDING_CONFIRMATION}, to: models.AWAITING_DISBURSEMENT},
	EventProviderReleased: {from: []models.TransactionStatus{models.PENDING_CONFIRMATION}, to: models.AWAITING_DISBURSEMENT},
	EventDisbursed:        {from: []models.TransactionStatus{models.AWAITING_DISBURSEMENT}, to: models.COMPLETED},
	EventCancel:           {from: beforeFunding, to: models.CANCELLED},
	EventExpire:           {from: beforeFunding, to: models.EXPIRED},
	EventDispute:          {from: []models.TransactionStatus{models.ESCROW_FUNDED, models.PENDING_CONFIRMATION}, to: models.DISPUTED},
	EventProviderRefunded: {
		from: []models.TransactionStatus{models.PAYMENT_INITIATED, models.ESCROW_FUNDED, models.PENDING_CONFIRMATION, models.AWAITING_DISBURSEMENT},
		to:   models.CANCELLED,
	},
}

// Transition returns the status reached by applying event in status from, or ErrInvalidState.
func Transition(from models.TransactionStatus, event Event) (models.TransactionStatus, error) {
	e, ok := edges[event]
	if !ok {
		return from, fmt.Errorf("%w: unknown event %q", ErrInvalidState, event)
	}
	for _, s := range e.from {
		if s == from {
			return e.to, nil
		}
	}
	return from, fmt.Errorf("%w: cannot apply %s in status %s", ErrInvalidState, event, from)
}

// Allowed reports whether event may be applied in status.
func Allowed(status models.TransactionStatus, event Event) bool {
	_, err := Transition(status, event)
	return err == nil
}

// apply moves tx along event. It is the only place that writes tx.Status.
func apply(tx *models.Transaction, event Event) error {
	to, err := Transition(tx.Status, event)
	if err != nil {
		return err
	}
	tx.Status = to
	return nil
}
