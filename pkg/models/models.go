package models

import (
	"time"
)

// TransactionStatus defines the possible states of a property sale transaction.
type TransactionStatus string

const (
	DRAFT                 TransactionStatus = "draft"
	AWAITING_CODE         TransactionStatus = "awaiting_code"
	VERIFIED              TransactionStatus = "verified"
	PAYMENT_INITIATED     TransactionStatus = "payment_initiated"
	ESCROW_FUNDED         TransactionStatus = "escrow_funded"
	PENDING_CONFIRMATION  TransactionStatus = "pending_confirmation"
	AWAITING_DISBURSEMENT TransactionStatus = "awaiting_disbursement"
	COMPLETED             TransactionStatus = "completed"
	CANCELLED             TransactionStatus = "cancelled"
	EXPIRED               TransactionStatus = "expired"
	DISPUTED              TransactionStatus = "disputed"
)

// IsTerminal reports whether no further transition may leave the status.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case COMPLETED, CANCELLED, EXPIRED, DISPUTED:
		return true
	}
	return false
}

// Role identifies a counterparty of a transaction.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// PaymentMethod selects which provider integration moves the funds.
type PaymentMethod string

const (
	PaymentMethodEscrow PaymentMethod = "escrow"
	PaymentMethodCard   PaymentMethod = "card"
)

// DraftSnapshot is the copy of the listing taken when the transaction is created.
type DraftSnapshot struct {
	Title    string `json:"title" dynamodbav:"title"`
	Price    int64  `json:"price" dynamodbav:"price"`
	Currency string `json:"currency" dynamodbav:"currency"`
	PhotoURL string `json:"photo_url,omitempty" dynamodbav:"photo_url,omitempty"`
}

// PayoutSnapshot records the split computed when disbursement becomes due.
type PayoutSnapshot struct {
	Commission      int64      `json:"commission" dynamodbav:"commission"`
	NetAmount       int64      `json:"net_amount" dynamodbav:"net_amount"`
	PayoutReference string     `json:"payout_reference,omitempty" dynamodbav:"payout_reference,omitempty"`
	ScheduledAt     time.Time  `json:"scheduled_at" dynamodbav:"scheduled_at"`
	DisbursedAt     *time.Time `json:"disbursed_at,omitempty" dynamodbav:"disbursed_at,omitempty"`
}

// Transaction represents the internal domain model for a property sale.
// It includes dynamodbav tags for marshalling.
type Transaction struct {
	Id            string            `json:"id" dynamodbav:"id"`
	PropertyId    string            `json:"property_id" dynamodbav:"property_id"`
	BuyerId       string            `json:"buyer_id" dynamodbav:"buyer_id"`
	SellerId      string            `json:"seller_id" dynamodbav:"seller_id"`
	DraftSnapshot DraftSnapshot     `json:"draft_snapshot" dynamodbav:"draft_snapshot"`
	Amount        int64             `json:"amount" dynamodbav:"amount"`
	Currency      string            `json:"currency" dynamodbav:"currency"`
	Status        TransactionStatus `json:"status" dynamodbav:"status"`

	CodeHash       string     `json:"-" dynamodbav:"code_hash,omitempty"`
	CodeExpiresAt  *time.Time `json:"code_expires_at,omitempty" dynamodbav:"code_expires_at,omitempty"`
	CodeAttempts   int        `json:"-" dynamodbav:"code_attempts"`
	CodeConsumedAt *time.Time `json:"-" dynamodbav:"code_consumed_at,omitempty"`

	PaymentMethod    PaymentMethod `json:"payment_method,omitempty" dynamodbav:"payment_method,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty" dynamodbav:"payment_reference,omitempty"`
	EscrowId         string        `json:"escrow_id,omitempty" dynamodbav:"escrow_id,omitempty"`
	CheckoutURL      string        `json:"checkout_url,omitempty" dynamodbav:"checkout_url,omitempty"`

	IsBuyerConfirmed  bool `json:"is_buyer_confirmed" dynamodbav:"is_buyer_confirmed"`
	IsSellerConfirmed bool `json:"is_seller_confirmed" dynamodbav:"is_seller_confirmed"`

	PayoutSnapshot *PayoutSnapshot `json:"payout_snapshot,omitempty" dynamodbav:"payout_snapshot,omitempty"`
	DisputeReason  string          `json:"dispute_reason,omitempty" dynamodbav:"dispute_reason,omitempty"`

	// Frozen is set when a provider event named another escrow. No operation changes a frozen
	// transaction until an operator clears the flag.
	Frozen bool `json:"frozen,omitempty" dynamodbav:"frozen,omitempty"`

	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Confirmed reports whether the given role has confirmed satisfaction.
func (t *Transaction) Confirmed(role Role) bool {
	switch role {
	case RoleBuyer:
		return t.IsBuyerConfirmed
	case RoleSeller:
		return t.IsSellerConfirmed
	}
	return false
}

// Property is the read-only view of a listing owned by the listings service.
type Property struct {
	Id       string `dynamodbav:"id"`
	SellerId string `dynamodbav:"seller_id"`
	Title    string `dynamodbav:"title"`
	Price    int64  `dynamodbav:"price"`
	Currency string `dynamodbav:"currency"`
	PhotoURL string `dynamodbav:"photo_url,omitempty"`
}

// User is the read-only view of an account owned by the identity service.
type User struct {
	Id    string `dynamodbav:"id"`
	Email string `dynamodbav:"email"`
	Name  string `dynamodbav:"name"`
	Role  string `dynamodbav:"role"`
}
