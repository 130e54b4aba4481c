// Package providers defines the boundary to the external escrow and card-payment processors.
package providers

import (
	"context"
	"errors"
)

var (
	// ErrGatewayUnavailable is returned for timeouts, 5xx responses and an open circuit. It is retryable.
	ErrGatewayUnavailable = errors.New("payment provider unavailable")
	// ErrGatewayRejected is returned when the provider refused the request. Retrying the same request will not help.
	ErrGatewayRejected = errors.New("payment provider rejected the request")
	// ErrPaymentInProgress is returned when a charge for the reference is already open at the provider
	// and its checkout cannot be handed out again. Retry once the charge completes or is abandoned.
	ErrPaymentInProgress = errors.New("payment already in progress at the provider")
)

// EscrowStatus is the provider's view of held funds.
type EscrowStatus string

const (
	EscrowPending   EscrowStatus = "pending"
	EscrowFunded    EscrowStatus = "funded"
	EscrowReleased  EscrowStatus = "released"
	EscrowRefunded  EscrowStatus = "refunded"
	EscrowCancelled EscrowStatus = "cancelled"
)

// PaymentStatus is the card processor's view of a charge.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// EscrowRequest describes the hosted checkout to open for a transaction.
// TransactionID doubles as the idempotency key.
type EscrowRequest struct {
	TransactionID string
	PropertyTitle string
	Amount        int64
	Currency      string
	BuyerEmail    string
}

// EscrowSession is the result of opening a hosted checkout.
type EscrowSession struct {
	EscrowID    string
	CheckoutURL string
}

// Payout is the split handed to the provider when held funds are released.
type Payout struct {
	TransactionID string
	Commission    int64
	NetAmount     int64
}

// PaymentRequest describes a card charge. Reference is the idempotency key.
type PaymentRequest struct {
	Reference  string
	Amount     int64
	Currency   string
	PayerEmail string
	Metadata   map[string]string
}

// PaymentInit is the result of initializing a card charge. Paid is set when a retried
// initialize found the charge already completed; RedirectURL is empty then.
type PaymentInit struct {
	Reference   string
	RedirectURL string
	Paid        bool
}

// PaymentResult is the outcome of verifying a card charge. TransactionID is the transaction the
// charge was opened for, taken from the charge metadata; empty when the charge carries none.
type PaymentResult struct {
	Reference     string
	TransactionID string
	Status        PaymentStatus
	Amount        int64
	Currency      string
}

// EscrowProvider is a hosted checkout whose funds are held by the provider until released.
type EscrowProvider interface {
	CreateEscrowSession(ctx context.Context, req EscrowRequest) (*EscrowSession, error)
	GetEscrowStatus(ctx context.Context, escrowID string) (EscrowStatus, error)
	ReleaseEscrow(ctx context.Context, escrowID string, payout Payout) (string, error)
	CancelEscrowSession(ctx context.Context, escrowID string) error
}

// PaymentGateway is a direct card processor.
type PaymentGateway interface {
	InitializePayment(ctx context.Context, req PaymentRequest) (*PaymentInit, error)
	VerifyPayment(ctx context.Context, reference string) (*PaymentResult, error)
}
