package storage

import (
	"context"

	"github.com/chris/property-escrow/pkg/models"
)

// DirectoryReader provides read-only access to the property and user records owned by other services.
type DirectoryReader interface {
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}
