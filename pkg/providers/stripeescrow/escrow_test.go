package stripeescrow

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/chris/property-escrow/pkg/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

type fakeSessions struct {
	created   []*stripe.CheckoutSessionCreateParams
	session   *stripe.CheckoutSession
	err       error
	expiredID string
}

func (f *fakeSessions) Create(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	f.created = append(f.created, params)
	return f.session, f.err
}

func (f *fakeSessions) Retrieve(ctx context.Context, id string, params *stripe.CheckoutSessionRetrieveParams) (*stripe.CheckoutSession, error) {
	return f.session, f.err
}

func (f *fakeSessions) Expire(ctx context.Context, id string, params *stripe.CheckoutSessionExpireParams) (*stripe.CheckoutSession, error) {
	f.expiredID = id
	return f.session, f.err
}

type fakeIntents struct {
	captured []*stripe.PaymentIntentCaptureParams
	err      error
}

func (f *fakeIntents) Capture(ctx context.Context, id string, params *stripe.PaymentIntentCaptureParams) (*stripe.PaymentIntent, error) {
	f.captured = append(f.captured, params)
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.PaymentIntent{ID: id, Status: stripe.PaymentIntentStatusSucceeded}, nil
}

func TestCreateEscrowSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sessions := &fakeSessions{session: &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}}
		provider := &Provider{sessions: sessions, successURL: "https://app/success", cancelURL: "https://app/cancel"}

		session, err := provider.CreateEscrowSession(context.Background(), providers.EscrowRequest{
			TransactionID: "tx1",
			PropertyTitle: "Two bedroom flat",
			Amount:        50000,
			Currency:      "NGN",
			BuyerEmail:    "buyer@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", session.EscrowID)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.CheckoutURL)

		require.Len(t, sessions.created, 1)
		params := sessions.created[0]
		assert.Equal(t, "escrow-tx1", *params.IdempotencyKey)
		assert.Equal(t, "manual", *params.PaymentIntentData.CaptureMethod)
		assert.Equal(t, "ngn", *params.LineItems[0].PriceData.Currency)
		assert.Equal(t, int64(50000), *params.LineItems[0].PriceData.UnitAmount)
		assert.Equal(t, "tx1", params.Metadata["transaction_id"])
	})

	t.Run("Invalid Request Is Rejected", func(t *testing.T) {
		sessions := &fakeSessions{err: &stripe.Error{HTTPStatusCode: http.StatusBadRequest, Type: stripe.ErrorTypeInvalidRequest, Msg: "Invalid currency"}}
		provider := &Provider{sessions: sessions}

		_, err := provider.CreateEscrowSession(context.Background(), providers.EscrowRequest{TransactionID: "tx1", Currency: "XXX"})

		assert.ErrorIs(t, err, providers.ErrGatewayRejected)
	})

	t.Run("Server Error Is Unavailable", func(t *testing.T) {
		sessions := &fakeSessions{err: &stripe.Error{HTTPStatusCode: http.StatusServiceUnavailable, Type: stripe.ErrorTypeAPI}}
		provider := &Provider{sessions: sessions}

		_, err := provider.CreateEscrowSession(context.Background(), providers.EscrowRequest{TransactionID: "tx1"})

		assert.ErrorIs(t, err, providers.ErrGatewayUnavailable)
	})

	t.Run("Network Error Is Unavailable", func(t *testing.T) {
		sessions := &fakeSessions{err: errors.New("connection reset by peer")}
		provider := &Provider{sessions: sessions}

		_, err := provider.CreateEscrowSession(context.Background(), providers.EscrowRequest{TransactionID: "tx1"})

		assert.ErrorIs(t, err, providers.ErrGatewayUnavailable)
	})
}

func TestGetEscrowStatus(t *testing.T) {
	cases := []struct {
		name    string
		session *stripe.CheckoutSession
		want    providers.EscrowStatus
	}{
		{"Open", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusOpen}, providers.EscrowPending},
		{"Expired", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusExpired}, providers.EscrowCancelled},
		{"Authorized", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusComplete, PaymentIntent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusRequiresCapture}}, providers.EscrowFunded},
		{"Captured", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusComplete, PaymentIntent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded}}, providers.EscrowReleased},
		{"Voided", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusComplete, PaymentIntent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusCanceled}}, providers.EscrowCancelled},
		{"Processing", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusComplete, PaymentIntent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusProcessing}}, providers.EscrowPending},
		{"Refunded", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusComplete, PaymentIntent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded, LatestCharge: &stripe.Charge{Refunded: true}}}, providers.EscrowRefunded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &Provider{sessions: &fakeSessions{session: tc.session}}

			status, err := provider.GetEscrowStatus(context.Background(), "cs_test_1")

			assert.NoError(t, err)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestReleaseEscrow(t *testing.T) {
	payout := providers.Payout{TransactionID: "tx1", Commission: 2000, NetAmount: 48000}

	t.Run("Captures Held Funds", func(t *testing.T) {
		sessions := &fakeSessions{session: &stripe.CheckoutSession{ID: "cs_1", PaymentIntent: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusRequiresCapture}}}
		intents := &fakeIntents{}
		provider := &Provider{sessions: sessions, intents: intents}

		ref, err := provider.ReleaseEscrow(context.Background(), "cs_1", payout)

		require.NoError(t, err)
		assert.Equal(t, "pi_1", ref)
		require.Len(t, intents.captured, 1)
		assert.Equal(t, "release-tx1", *intents.captured[0].IdempotencyKey)
		assert.Equal(t, "2000", intents.captured[0].Metadata["commission"])
	})

	t.Run("Already Captured", func(t *testing.T) {
		sessions := &fakeSessions{session: &stripe.CheckoutSession{ID: "cs_1", PaymentIntent: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded}}}
		intents := &fakeIntents{}
		provider := &Provider{sessions: sessions, intents: intents}

		ref, err := provider.ReleaseEscrow(context.Background(), "cs_1", payout)

		require.NoError(t, err)
		assert.Equal(t, "pi_1", ref)
		assert.Empty(t, intents.captured)
	})

	t.Run("No Payment", func(t *testing.T) {
		provider := &Provider{sessions: &fakeSessions{session: &stripe.CheckoutSession{ID: "cs_1"}}, intents: &fakeIntents{}}

		_, err := provider.ReleaseEscrow(context.Background(), "cs_1", payout)

		assert.ErrorIs(t, err, providers.ErrGatewayRejected)
	})
}

func TestCancelEscrowSession(t *testing.T) {
	sessions := &fakeSessions{session: &stripe.CheckoutSession{ID: "cs_1"}}
	provider := &Provider{sessions: sessions}

	err := provider.CancelEscrowSession(context.Background(), "cs_1")

	assert.NoError(t, err)
	assert.Equal(t, "cs_1", sessions.expiredID)
}
