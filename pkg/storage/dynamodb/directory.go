package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/storage"
)

// GetProperty retrieves a listing from the properties table. The table is owned by the listings service.
func (s *Store) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	var property models.Property
	err := s.getByID(ctx, s.PropertiesTableName, propertyID, &property)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get property %s: %w", propertyID, storage.ErrPropertyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property %s: %w", propertyID, err)
	}
	return &property, nil
}

// GetUser retrieves an account from the users table. The table is owned by the identity service.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.getByID(ctx, s.UsersTableName, userID, &user)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return &user, nil
}

func (s *Store) getByID(ctx context.Context, table, id string, out any) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to get item from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return storage.ErrNotFound
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return nil
}
