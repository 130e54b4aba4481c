package transactions

import (
	"testing"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		path := []struct {
			event Event
			to    models.TransactionStatus
		}{
			{EventCodeIssued, models.AWAITING_CODE},
			{EventCodeIssued, models.AWAITING_CODE},
			{EventCodeVerified, models.VERIFIED},
			{EventPaymentInitiated, models.PAYMENT_INITIATED},
			{EventFunded, models.ESCROW_FUNDED},
			{EventAwaitConfirm, models.PENDING_CONFIRMATION},
			{EventBothConfirmed, models.AWAITING_DISBURSEMENT},
			{EventDisbursed, models.COMPLETED},
		}

		status := models.DRAFT
		for _, step := range path {
			next, err := Transition(status, step.event)
			require.NoError(t, err, "%s from %s", step.event, status)
			assert.Equal(t, step.to, next)
			status = next
		}
	})

	t.Run("Terminal Statuses Accept Nothing", func(t *testing.T) {
		terminal := []models.TransactionStatus{models.COMPLETED, models.CANCELLED, models.EXPIRED, models.DISPUTED}
		for _, status := range terminal {
			assert.True(t, status.IsTerminal())
			for event := range edges {
				_, err := Transition(status, event)
				assert.ErrorIs(t, err, ErrInvalidState, "%s from %s", event, status)
			}
		}
	})

	t.Run("Cancel Only Before Funding", func(t *testing.T) {
		for _, status := range beforeFunding {
			assert.True(t, Allowed(status, EventCancel), status)
			assert.True(t, Allowed(status, EventExpire), status)
		}
		for _, status := range []models.TransactionStatus{models.ESCROW_FUNDED, models.PENDING_CONFIRMATION, models.AWAITING_DISBURSEMENT} {
			assert.False(t, Allowed(status, EventCancel), status)
			assert.True(t, Allowed(status, EventProviderRefunded), status)
		}
	})

	t.Run("Dispute Only While Funds Held", func(t *testing.T) {
		assert.True(t, Allowed(models.ESCROW_FUNDED, EventDispute))
		assert.True(t, Allowed(models.PENDING_CONFIRMATION, EventDispute))
		assert.False(t, Allowed(models.VERIFIED, EventDispute))
		assert.False(t, Allowed(models.AWAITING_DISBURSEMENT, EventDispute))
	})

	t.Run("No Skipping", func(t *testing.T) {
		_, err := Transition(models.VERIFIED, EventFunded)
		assert.ErrorIs(t, err, ErrInvalidState)
		_, err = Transition(models.ESCROW_FUNDED, EventBothConfirmed)
		assert.ErrorIs(t, err, ErrInvalidState)
		_, err = Transition(models.DRAFT, EventCodeVerified)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Unknown Event", func(t *testing.T) {
		next, err := Transition(models.DRAFT, Event("teleport"))
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, models.DRAFT, next)
	})
}

func TestApply(t *testing.T) {
	tx := &models.Transaction{Status: models.PAYMENT_INITIATED}

	require.NoError(t, apply(tx, EventFunded))
	assert.Equal(t, models.ESCROW_FUNDED, tx.Status)

	err := apply(tx, EventPaymentInitiated)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, models.ESCROW_FUNDED, tx.Status)
}
