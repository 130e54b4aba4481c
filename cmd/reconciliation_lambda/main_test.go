package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/providers"
	pmocks "github.com/chris/property-escrow/pkg/providers/mocks"
	"github.com/chris/property-escrow/pkg/reconciler"
	"github.com/chris/property-escrow/pkg/storage/memory"
	"github.com/chris/property-escrow/pkg/transactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubSweeper struct {
	res reconciler.SweepResult
	err error
}

func (s stubSweeper) Sweep(context.Context) (reconciler.SweepResult, error) {
	return s.res, s.err
}

func TestHandleRequest(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success", func(t *testing.T) {
		h := &Handler{sweeper: stubSweeper{res: reconciler.SweepResult{Resumed: 2}}, logger: logger}
		assert.NoError(t, h.HandleRequest(context.Background()))
	})

	t.Run("Listing Fails", func(t *testing.T) {
		h := &Handler{sweeper: stubSweeper{err: errors.New("dynamodb: throttled")}, logger: logger}
		assert.Error(t, h.HandleRequest(context.Background()))
	})
}

func TestResumeOnce(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.New()
	escrow := pmocks.NewEscrowProvider(t)
	svc, err := transactions.NewService(transactions.Dependencies{Store: store, Escrow: escrow, Logger: logger})
	require.NoError(t, err)

	require.NoError(t, store.CreateTransaction(ctx, &models.Transaction{
		Id: "tx1", PropertyId: "prop1", BuyerId: "buyer1", SellerId: "seller1", Amount: 50000, Currency: "NGN",
		Status: models.PAYMENT_INITIATED, PaymentMethod: models.PaymentMethodEscrow, EscrowId: "cs_1",
	}))
	escrow.On("GetEscrowStatus", mock.Anything, "cs_1").Return(providers.EscrowFunded, nil).Once()

	poller := reconciler.NewPoller(svc, nil, nil, logger, reconciler.Config{})
	defer poller.Stop()

	resumeOnce(poller, logger)(ctx, "tx1")

	tx, err := svc.Get(ctx, "tx1")
	require.NoError(t, err)
	assert.Equal(t, models.PENDING_CONFIRMATION, tx.Status)
	assert.Zero(t, poller.Watching())
}
