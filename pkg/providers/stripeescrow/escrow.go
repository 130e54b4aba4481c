// Package stripeescrow implements providers.EscrowProvider on Stripe Checkout. Funds are authorized
// with manual capture, so Stripe holds them until the platform captures on release.
package stripeescrow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chris/property-escrow/pkg/providers"
	"github.com/stripe/stripe-go/v82"
)

type sessionAPI interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
	Retrieve(ctx context.Context, id string, params *stripe.CheckoutSessionRetrieveParams) (*stripe.CheckoutSession, error)
	Expire(ctx context.Context, id string, params *stripe.CheckoutSessionExpireParams) (*stripe.CheckoutSession, error)
}

type paymentIntentAPI interface {
	Capture(ctx context.Context, id string, params *stripe.PaymentIntentCaptureParams) (*stripe.PaymentIntent, error)
}

// Config holds the Stripe settings.
type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// Provider is the Stripe Checkout escrow provider.
type Provider struct {
	sessions   sessionAPI
	intents    paymentIntentAPI
	successURL string
	cancelURL  string
}

// New creates a Provider backed by a Stripe client.
func New(cfg Config) *Provider {
	sc := stripe.NewClient(cfg.SecretKey)
	return &Provider{
		sessions:   sc.V1CheckoutSessions,
		intents:    sc.V1PaymentIntents,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// Make sure we conform to the interface
var _ providers.EscrowProvider = (*Provider)(nil)

// CreateEscrowSession opens a hosted checkout. The transaction id is used as the Stripe idempotency
// key so a retried call returns the same session instead of creating a second one.
func (p *Provider) CreateEscrowSession(ctx context.Context, req providers.EscrowRequest) (*providers.EscrowSession, error) {
	metadata := map[string]string{"transaction_id": req.TransactionID}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.successURL),
		CancelURL:         stripe.String(p.cancelURL),
		ClientReferenceID: stripe.String(req.TransactionID),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(req.PropertyTitle),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionCreatePaymentIntentDataParams{
			CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
			Metadata:      metadata,
		},
		Metadata: metadata,
	}
	if req.BuyerEmail != "" {
		params.CustomerEmail = stripe.String(req.BuyerEmail)
	}
	params.SetIdempotencyKey("escrow-" + req.TransactionID)

	session, err := p.sessions.Create(ctx, params)
	if err != nil {
		return nil, classify("create checkout session", err)
	}

	slog.Info("stripe checkout session created", "transaction_id", req.TransactionID, "escrow_id", session.ID)
	return &providers.EscrowSession{EscrowID: session.ID, CheckoutURL: session.URL}, nil
}

// GetEscrowStatus maps the session and its payment intent onto an EscrowStatus.
func (p *Provider) GetEscrowStatus(ctx context.Context, escrowID string) (providers.EscrowStatus, error) {
	params := &stripe.CheckoutSessionRetrieveParams{}
	params.AddExpand("payment_intent")
	params.AddExpand("payment_intent.latest_charge")

	session, err := p.sessions.Retrieve(ctx, escrowID, params)
	if err != nil {
		return "", classify("retrieve checkout session", err)
	}

	return sessionStatus(session), nil
}

func sessionStatus(session *stripe.CheckoutSession) providers.EscrowStatus {
	switch session.Status {
	case stripe.CheckoutSessionStatusExpired:
		return providers.EscrowCancelled
	case stripe.CheckoutSessionStatusComplete:
	default:
		return providers.EscrowPending
	}

	pi := session.PaymentIntent
	if pi == nil {
		return providers.EscrowPending
	}
	if pi.LatestCharge != nil && pi.LatestCharge.Refunded {
		return providers.EscrowRefunded
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusRequiresCapture:
		return providers.EscrowFunded
	case stripe.PaymentIntentStatusSucceeded:
		return providers.EscrowReleased
	case stripe.PaymentIntentStatusCanceled:
		return providers.EscrowCancelled
	}
	return providers.EscrowPending
}

// ReleaseEscrow captures the held payment intent. The returned payout reference is the payment intent id.
func (p *Provider) ReleaseEscrow(ctx context.Context, escrowID string, payout providers.Payout) (string, error) {
	params := &stripe.CheckoutSessionRetrieveParams{}
	params.AddExpand("payment_intent")

	session, err := p.sessions.Retrieve(ctx, escrowID, params)
	if err != nil {
		return "", classify("retrieve checkout session", err)
	}
	if session.PaymentIntent == nil {
		return "", fmt.Errorf("%w: checkout session %s has no payment", providers.ErrGatewayRejected, escrowID)
	}

	pi := session.PaymentIntent
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		return pi.ID, nil
	}

	captureParams := &stripe.PaymentIntentCaptureParams{
		Metadata: map[string]string{
			"commission": fmt.Sprintf("%d", payout.Commission),
			"net_amount": fmt.Sprintf("%d", payout.NetAmount),
		},
	}
	captureParams.SetIdempotencyKey("release-" + payout.TransactionID)

	captured, err := p.intents.Capture(ctx, pi.ID, captureParams)
	if err != nil {
		return "", classify("capture payment intent", err)
	}

	slog.Info("stripe payment intent captured", "transaction_id", payout.TransactionID, "payment_intent", captured.ID)
	return captured.ID, nil
}

// CancelEscrowSession expires an open checkout so the buyer can no longer pay into it.
func (p *Provider) CancelEscrowSession(ctx context.Context, escrowID string) error {
	_, err := p.sessions.Expire(ctx, escrowID, &stripe.CheckoutSessionExpireParams{})
	if err != nil {
		return classify("expire checkout session", err)
	}
	return nil
}

// classify maps a Stripe error onto the provider error taxonomy.
func classify(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError ||
			stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
			stripeErr.Type == stripe.ErrorTypeAPI {
			return fmt.Errorf("%w: failed to %s: %v", providers.ErrGatewayUnavailable, op, err)
		}
		return fmt.Errorf("%w: failed to %s: %v", providers.ErrGatewayRejected, op, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return fmt.Errorf("%w: failed to %s: %v", providers.ErrGatewayUnavailable, op, err)
}
