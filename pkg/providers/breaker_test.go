package providers_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/providers/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGuardedEscrow(t *testing.T) {
	t.Run("Passes Through", func(t *testing.T) {
		mockEscrow := new(mocks.EscrowProvider)
		guarded := providers.NewGuardedEscrow(mockEscrow, providers.BreakerConfig{})

		mockEscrow.On("GetEscrowStatus", mock.Anything, "cs_1").Return(providers.EscrowFunded, nil)

		status, err := guarded.GetEscrowStatus(context.Background(), "cs_1")

		assert.NoError(t, err)
		assert.Equal(t, providers.EscrowFunded, status)
		mockEscrow.AssertExpectations(t)
	})

	t.Run("Opens After Consecutive Unavailable", func(t *testing.T) {
		mockEscrow := new(mocks.EscrowProvider)
		guarded := providers.NewGuardedEscrow(mockEscrow, providers.BreakerConfig{ConsecutiveFails: 2, OpenTimeout: time.Minute})

		unavailable := fmt.Errorf("%w: 503", providers.ErrGatewayUnavailable)
		mockEscrow.On("GetEscrowStatus", mock.Anything, "cs_1").Times(2).Return(providers.EscrowStatus(""), unavailable)

		for i := 0; i < 2; i++ {
			_, err := guarded.GetEscrowStatus(context.Background(), "cs_1")
			assert.ErrorIs(t, err, providers.ErrGatewayUnavailable)
		}

		_, err := guarded.GetEscrowStatus(context.Background(), "cs_1")
		assert.ErrorIs(t, err, providers.ErrGatewayUnavailable)
		assert.Contains(t, err.Error(), "circuit open")
		mockEscrow.AssertNumberOfCalls(t, "GetEscrowStatus", 2)
	})

	t.Run("Rejections Do Not Trip", func(t *testing.T) {
		mockEscrow := new(mocks.EscrowProvider)
		guarded := providers.NewGuardedEscrow(mockEscrow, providers.BreakerConfig{ConsecutiveFails: 1})

		rejected := fmt.Errorf("%w: invalid currency", providers.ErrGatewayRejected)
		mockEscrow.On("CreateEscrowSession", mock.Anything, mock.Anything).Return(nil, rejected)

		for i := 0; i < 3; i++ {
			_, err := guarded.CreateEscrowSession(context.Background(), providers.EscrowRequest{TransactionID: "tx1"})
			assert.ErrorIs(t, err, providers.ErrGatewayRejected)
		}
		mockEscrow.AssertNumberOfCalls(t, "CreateEscrowSession", 3)
	})

	t.Run("Call Timeout Is Unavailable", func(t *testing.T) {
		mockEscrow := new(mocks.EscrowProvider)
		guarded := providers.NewGuardedEscrow(mockEscrow, providers.BreakerConfig{CallTimeout: 20 * time.Millisecond})

		mockEscrow.On("CancelEscrowSession", mock.Anything, "cs_1").Return(func(ctx context.Context, escrowID string) error {
			<-ctx.Done()
			return ctx.Err()
		})

		err := guarded.CancelEscrowSession(context.Background(), "cs_1")

		assert.ErrorIs(t, err, providers.ErrGatewayUnavailable)
	})
}

func TestGuardedGateway(t *testing.T) {
	mockGateway := new(mocks.PaymentGateway)
	guarded := providers.NewGuardedGateway(mockGateway, providers.BreakerConfig{})

	mockGateway.On("VerifyPayment", mock.Anything, "tx1").Return(&providers.PaymentResult{Reference: "tx1", Status: providers.PaymentSuccess}, nil)

	result, err := guarded.VerifyPayment(context.Background(), "tx1")

	assert.NoError(t, err)
	assert.Equal(t, providers.PaymentSuccess, result.Status)
	mockGateway.AssertExpectations(t)
}
