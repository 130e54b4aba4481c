// Package memory provides an in-process Storage used for local runs and service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/storage"
)

type openKey struct {
	propertyID string
	buyerID    string
}

// Store keeps transactions in maps guarded by a single mutex. Writes follow the same
// compare-and-swap rules as the DynamoDB store.
type Store struct {
	mu           sync.Mutex
	transactions map[string]models.Transaction
	open         map[openKey]string
	references   map[string]string
	properties   map[string]models.Property
	users        map[string]models.User
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		transactions: make(map[string]models.Transaction),
		open:         make(map[openKey]string),
		references:   make(map[string]string),
		properties:   make(map[string]models.Property),
		users:        make(map[string]models.User),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// PutProperty seeds a listing.
func (s *Store) PutProperty(p models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.Id] = p
}

// PutUser seeds an account.
func (s *Store) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Id] = u
}

func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[txID]
	if !ok {
		return nil, fmt.Errorf("transaction with ID %s not found: %w", txID, storage.ErrNotFound)
	}
	return clone(tx), nil
}

func (s *Store) FindOpenTransaction(ctx context.Context, propertyID, buyerID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txID, ok := s.open[openKey{propertyID, buyerID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(s.transactions[txID]), nil
}

func (s *Store) GetLatestForUser(ctx context.Context, propertyID, userID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *models.Transaction
	for _, tx := range s.transactions {
		if tx.PropertyId != propertyID || (tx.BuyerId != userID && tx.SellerId != userID) {
			continue
		}
		if latest == nil || tx.CreatedAt.After(latest.CreatedAt) {
			latest = clone(tx)
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return latest, nil
}

func (s *Store) ListTransactionsByStatus(ctx context.Context, status models.TransactionStatus, updatedBefore time.Time, limit int32) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []models.Transaction
	for _, tx := range s.transactions {
		if tx.Status == status && tx.UpdatedAt.Before(updatedBefore) {
			txs = append(txs, *clone(tx))
		}
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].UpdatedAt.Before(txs[j].UpdatedAt) })
	if limit > 0 && len(txs) > int(limit) {
		txs = txs[:limit]
	}
	return txs, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := openKey{tx.PropertyId, tx.BuyerId}
	if _, ok := s.open[key]; ok {
		return storage.ErrConflict
	}
	if _, ok := s.transactions[tx.Id]; ok {
		return storage.ErrConflict
	}
	s.transactions[tx.Id] = *clone(*tx)
	s.open[key] = tx.Id
	return nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *models.Transaction, expected models.TransactionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.transactions[tx.Id]
	if !ok || current.Status != expected || current.Version != tx.Version {
		return storage.ErrConflict
	}

	next := *clone(*tx)
	next.Version = tx.Version + 1
	s.transactions[tx.Id] = next

	if next.Status.IsTerminal() {
		key := openKey{next.PropertyId, next.BuyerId}
		if s.open[key] == next.Id {
			delete(s.open, key)
		}
	}

	tx.Version = next.Version
	return nil
}

func (s *Store) SetConfirmation(ctx context.Context, txID string, role models.Role, at time.Time) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[txID]
	if !ok || tx.Status != models.PENDING_CONFIRMATION {
		return nil, storage.ErrConflict
	}

	switch role {
	case models.RoleBuyer:
		tx.IsBuyerConfirmed = true
	case models.RoleSeller:
		tx.IsSellerConfirmed = true
	default:
		return nil, fmt.Errorf("unknown confirmation role %q", role)
	}
	tx.Version++
	tx.UpdatedAt = at.UTC()
	s.transactions[txID] = tx

	return clone(tx), nil
}

func (s *Store) ReservePaymentReference(ctx context.Context, reference, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.references[reference]; ok && owner != txID {
		return storage.ErrConflict
	}
	s.references[reference] = txID
	return nil
}

func (s *Store) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[propertyID]
	if !ok {
		return nil, fmt.Errorf("failed to get property %s: %w", propertyID, storage.ErrPropertyNotFound)
	}
	return &p, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, storage.ErrUserNotFound)
	}
	return &u, nil
}

// clone copies the transaction including the pointer fields so callers never share state with the store.
func clone(tx models.Transaction) *models.Transaction {
	out := tx
	if tx.CodeExpiresAt != nil {
		t := *tx.CodeExpiresAt
		out.CodeExpiresAt = &t
	}
	if tx.CodeConsumedAt != nil {
		t := *tx.CodeConsumedAt
		out.CodeConsumedAt = &t
	}
	if tx.PayoutSnapshot != nil {
		p := *tx.PayoutSnapshot
		if p.DisbursedAt != nil {
			t := *p.DisbursedAt
			p.DisbursedAt = &t
		}
		out.PayoutSnapshot = &p
	}
	return &out
}
