package transactions

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCode is returned when the submitted code does not match.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrCodeExpired is returned when the code was submitted after its expiry.
	ErrCodeExpired = errors.New("verification code expired")
	// ErrCodeAlreadyUsed is returned when the code was already consumed.
	ErrCodeAlreadyUsed = errors.New("verification code already used")
	// ErrTooManyAttempts is returned once a code has been invalidated after repeated failures.
	ErrTooManyAttempts = errors.New("too many verification attempts, request a new code")

	// ErrInvalidState is returned when an operation is not legal from the transaction's current status.
	ErrInvalidState = errors.New("operation not allowed in current transaction state")
	// ErrFrozen is returned for any change to a transaction frozen after an escrow mismatch.
	ErrFrozen = fmt.Errorf("%w: transaction frozen pending operator review", ErrInvalidState)
	// ErrEscrowMismatch is returned when a provider event names a different escrow than the one stored.
	ErrEscrowMismatch = errors.New("escrow id does not match transaction")
	// ErrCurrencyMismatch is returned when a payment is requested in a currency other than the agreed one.
	ErrCurrencyMismatch = errors.New("currency does not match transaction")
	// ErrReferenceMismatch is returned when a payment reference belongs to another charge.
	ErrReferenceMismatch = errors.New("payment reference does not match transaction")
	// ErrNotDue is returned when a disbursement arrives before the cooling-off period has ended.
	ErrNotDue = errors.New("disbursement not yet due")

	// ErrInvalidRole is returned for a confirmation role other than buyer or seller.
	ErrInvalidRole = errors.New("role must be buyer or seller")
	// ErrBuyerIsSeller is returned when a seller requests a code for their own listing.
	ErrBuyerIsSeller = errors.New("buyer cannot purchase their own property")
)
