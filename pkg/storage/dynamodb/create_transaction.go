package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/storage"
)

// CreateTransaction atomically reserves the open slot for the property and buyer and creates the transaction record.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	slog.Log(ctx, slog.LevelDebug, "creating transaction", "transaction_id", tx.Id, "property_id", tx.PropertyId)

	// Marshal the transaction for the Put operation.
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Reserve the open slot for this property and buyer.
				Put: &types.Put{
					TableName: aws.String(s.TransactionsTableName),
					Item: map[string]types.AttributeValue{
						"id":                &types.AttributeValueMemberS{Value: openGuardKey(tx.PropertyId, tx.BuyerId)},
						openGuardTxIDColumn: &types.AttributeValueMemberS{Value: tx.Id},
					},
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Create the new transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if isConditionalFailure(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to execute transaction: %w", err)
	}

	return nil
}
