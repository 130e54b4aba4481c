package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/scheduler"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/chris/property-escrow/pkg/transactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDisburser struct {
	mock.Mock
}

func (m *mockDisburser) Disburse(ctx context.Context, txID string) (*models.Transaction, error) {
	args := m.Called(ctx, txID)
	tx, _ := args.Get(0).(*models.Transaction)
	return tx, args.Error(1)
}

func (m *mockDisburser) ScheduleDisbursement(ctx context.Context, tx *models.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func message(t *testing.T, id, txID string) events.SQSMessage {
	body, err := json.Marshal(scheduler.DisbursementRequest{TransactionID: txID, NetAmount: 48000})
	require.NoError(t, err)
	return events.SQSMessage{MessageId: id, Body: string(body)}
}

func TestHandleRequest(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success", func(t *testing.T) {
		svc := new(mockDisburser)
		svc.On("Disburse", mock.Anything, "tx1").Return(&models.Transaction{Id: "tx1", Status: models.COMPLETED}, nil).Once()
		h := &Handler{svc: svc, logger: logger}

		resp, err := h.HandleRequest(ctx, events.SQSEvent{Records: []events.SQSMessage{message(t, "m1", "tx1")}})

		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)
		svc.AssertExpectations(t)
	})

	t.Run("Not Yet Due Is Re-enqueued", func(t *testing.T) {
		svc := new(mockDisburser)
		tx := &models.Transaction{
			Id:             "tx1",
			Status:         models.AWAITING_DISBURSEMENT,
			PayoutSnapshot: &models.PayoutSnapshot{NetAmount: 48000, ScheduledAt: time.Now().Add(time.Hour)},
		}
		svc.On("Disburse", mock.Anything, "tx1").Return(tx, transactions.ErrNotDue).Once()
		svc.On("ScheduleDisbursement", mock.Anything, tx).Return(nil).Once()
		h := &Handler{svc: svc, logger: logger}

		resp, err := h.HandleRequest(ctx, events.SQSEvent{Records: []events.SQSMessage{message(t, "m1", "tx1")}})

		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)
		svc.AssertExpectations(t)
	})

	t.Run("Partial Batch Failure", func(t *testing.T) {
		svc := new(mockDisburser)
		svc.On("Disburse", mock.Anything, "tx1").Return(&models.Transaction{Id: "tx1", Status: models.COMPLETED}, nil).Once()
		svc.On("Disburse", mock.Anything, "tx2").Return(&models.Transaction{Id: "tx2"}, errors.New("stripe: timeout")).Once()
		svc.On("Disburse", mock.Anything, "tx3").Return(&models.Transaction{Id: "tx3", Status: models.DISPUTED}, transactions.ErrInvalidState).Once()
		svc.On("Disburse", mock.Anything, "tx4").Return(nil, storage.ErrNotFound).Once()
		h := &Handler{svc: svc, logger: logger}

		resp, err := h.HandleRequest(ctx, events.SQSEvent{Records: []events.SQSMessage{
			message(t, "m1", "tx1"),
			message(t, "m2", "tx2"),
			message(t, "m3", "tx3"),
			message(t, "m4", "tx4"),
			{MessageId: "m5", Body: "not-json"},
		}})

		require.NoError(t, err)
		assert.Equal(t, []events.SQSBatchItemFailure{{ItemIdentifier: "m2"}, {ItemIdentifier: "m5"}}, resp.BatchItemFailures)
		svc.AssertExpectations(t)
	})
}
