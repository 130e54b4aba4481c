package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/storage"
)

// ListTransactionsByStatus retrieves transactions in the given status last updated before the cutoff.
func (s *Store) ListTransactionsByStatus(ctx context.Context, status models.TransactionStatus, updatedBefore time.Time, limit int32) ([]models.Transaction, error) {
	cutoffAV, err := attributevalue.Marshal(updatedBefore.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(statusUpdatedAtGSI),
		KeyConditionExpression: aws.String("#status = :status AND updated_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
			":cutoff": cutoffAV,
		},
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by status: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}

// GetLatestForUser retrieves the newest transaction on a property in which the user is buyer or seller.
func (s *Store) GetLatestForUser(ctx context.Context, propertyID, userID string) (*models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(propertyCreatedGSI),
		KeyConditionExpression: aws.String("property_id = :propertyID"),
		FilterExpression:       aws.String("buyer_id = :userID OR seller_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":propertyID": &types.AttributeValueMemberS{Value: propertyID},
			":userID":     &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false), // Newest first
	}

	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query transactions for user: %w", err)
		}

		if len(result.Items) > 0 {
			var tx models.Transaction
			if err := attributevalue.UnmarshalMap(result.Items[0], &tx); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
			}
			return &tx, nil
		}

		if len(result.LastEvaluatedKey) == 0 {
			return nil, storage.ErrNotFound
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
