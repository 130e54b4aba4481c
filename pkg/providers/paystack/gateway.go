// Package paystack implements providers.PaymentGateway against the Paystack transaction API.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/chris/property-escrow/pkg/providers"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the Paystack API root.
const DefaultBaseURL = "https://api.paystack.co"

const duplicateReferenceMessage = "duplicate transaction reference"

// Gateway is the Paystack card gateway.
type Gateway struct {
	baseURL     string
	secretKey   string
	callbackURL string
	client      *http.Client
}

// New creates a Gateway. An empty baseURL means DefaultBaseURL.
func New(baseURL, secretKey, callbackURL string, client *http.Client) *Gateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Gateway{
		baseURL:     strings.TrimRight(baseURL, "/"),
		secretKey:   secretKey,
		callbackURL: callbackURL,
		client:      client,
	}
}

// Make sure we conform to the interface
var _ providers.PaymentGateway = (*Gateway)(nil)

type initializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// InitializePayment starts a charge using the request reference. Paystack rejects a reused reference,
// so a retry after a lost response falls back to verifying the existing charge rather than creating a second one.
// The result either carries a checkout URL or reports the charge as already paid.
func (g *Gateway) InitializePayment(ctx context.Context, req providers.PaymentRequest) (*providers.PaymentInit, error) {
	body, err := json.Marshal(initializeRequest{
		Email:       req.PayerEmail,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(req.Currency),
		Reference:   req.Reference,
		CallbackURL: g.callbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize request: %w", err)
	}

	status, payload, err := g.do(ctx, http.MethodPost, "/transaction/initialize", body)
	if err != nil {
		return nil, err
	}

	if status == http.StatusBadRequest && strings.Contains(strings.ToLower(gjson.GetBytes(payload, "message").String()), duplicateReferenceMessage) {
		slog.InfoContext(ctx, "paystack reference already initialized, verifying existing charge", "reference", req.Reference)
		return g.resumeCharge(ctx, req.Reference)
	}
	if err := checkResponse(status, payload, "initialize transaction"); err != nil {
		return nil, err
	}

	charge := &providers.PaymentInit{
		Reference:   gjson.GetBytes(payload, "data.reference").String(),
		RedirectURL: gjson.GetBytes(payload, "data.authorization_url").String(),
	}
	if charge.RedirectURL == "" {
		return nil, fmt.Errorf("%w: initialize transaction returned no authorization url", providers.ErrGatewayRejected)
	}
	return charge, nil
}

// resumeCharge decides what a retried initialize means for a charge Paystack already knows.
// The authorization URL of the first attempt cannot be recovered, so an open charge is reported
// as in progress until it completes or Paystack abandons it.
func (g *Gateway) resumeCharge(ctx context.Context, reference string) (*providers.PaymentInit, error) {
	existing, err := g.VerifyPayment(ctx, reference)
	if err != nil {
		return nil, err
	}
	switch existing.Status {
	case providers.PaymentSuccess:
		return &providers.PaymentInit{Reference: reference, Paid: true}, nil
	case providers.PaymentFailed:
		return nil, fmt.Errorf("%w: reference %s belongs to a failed or abandoned charge", providers.ErrGatewayRejected, reference)
	}
	return nil, fmt.Errorf("%w: charge %s is still open", providers.ErrPaymentInProgress, reference)
}

// VerifyPayment looks up a charge by reference.
func (g *Gateway) VerifyPayment(ctx context.Context, reference string) (*providers.PaymentResult, error) {
	status, payload, err := g.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(status, payload, "verify transaction"); err != nil {
		return nil, err
	}

	data := gjson.GetBytes(payload, "data")
	metadata := data.Get("metadata")
	if metadata.Type == gjson.String {
		// Metadata sent as a string comes back as one.
		metadata = gjson.Parse(metadata.String())
	}
	return &providers.PaymentResult{
		Reference:     data.Get("reference").String(),
		TransactionID: metadata.Get("transaction_id").String(),
		Status:        paymentStatus(data.Get("status").String()),
		Amount:        data.Get("amount").Int(),
		Currency:      data.Get("currency").String(),
	}, nil
}

func paymentStatus(s string) providers.PaymentStatus {
	switch s {
	case "success":
		return providers.PaymentSuccess
	case "failed", "abandoned", "reversed":
		return providers.PaymentFailed
	}
	return providers.PaymentPending
}

func (g *Gateway) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, nil, fmt.Errorf("paystack %s %s: %w", method, path, err)
		}
		return 0, nil, fmt.Errorf("%w: paystack %s %s: %v", providers.ErrGatewayUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read paystack response: %v", providers.ErrGatewayUnavailable, err)
	}
	return resp.StatusCode, payload, nil
}

func checkResponse(status int, payload []byte, op string) error {
	message := gjson.GetBytes(payload, "message").String()
	switch {
	case status >= http.StatusInternalServerError || status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: failed to %s: status %d", providers.ErrGatewayUnavailable, op, status)
	case status >= http.StatusBadRequest:
		return fmt.Errorf("%w: failed to %s: %s", providers.ErrGatewayRejected, op, message)
	case !gjson.ValidBytes(payload) || !gjson.GetBytes(payload, "status").Bool():
		return fmt.Errorf("%w: failed to %s: %s", providers.ErrGatewayRejected, op, message)
	}
	return nil
}
