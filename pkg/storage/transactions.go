package storage

import (
	"context"
	"time"

	"github.com/chris/property-escrow/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// FindOpenTransaction retrieves the non-terminal transaction for a property and buyer, if any.
	FindOpenTransaction(ctx context.Context, propertyID, buyerID string) (*models.Transaction, error)

	// GetLatestForUser retrieves the most recent transaction on a property where the user is buyer or seller.
	GetLatestForUser(ctx context.Context, propertyID, userID string) (*models.Transaction, error)

	// ListTransactionsByStatus retrieves transactions in a status that were last updated before the cutoff.
	ListTransactionsByStatus(ctx context.Context, status models.TransactionStatus, updatedBefore time.Time, limit int32) ([]models.Transaction, error)
}

// TransactionWriter defines the conditional writes the state machine relies on.
// Every write is compare-and-swap: a write whose precondition no longer holds returns ErrConflict.
type TransactionWriter interface {
	// CreateTransaction stores a new transaction. It fails with ErrConflict if an open
	// transaction already exists for the same property and buyer.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// UpdateTransaction replaces the stored transaction if it still has the expected status and
	// tx.Version. On success tx.Version is incremented.
	UpdateTransaction(ctx context.Context, tx *models.Transaction, expected models.TransactionStatus) error

	// SetConfirmation marks one counterparty as confirmed while the transaction is pending
	// confirmation, without touching the other counterparty's flag. It returns the stored result.
	SetConfirmation(ctx context.Context, txID string, role models.Role, at time.Time) (*models.Transaction, error)

	// ReservePaymentReference claims a card payment reference for a transaction. Reserving it again for
	// the same transaction succeeds; a reference held by another transaction returns ErrConflict.
	ReservePaymentReference(ctx context.Context, reference, txID string) error
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
