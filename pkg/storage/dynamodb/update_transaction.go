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

// UpdateTransaction replaces the transaction if the stored status and version still match.
// Transitions into a terminal status release the open slot for the property and buyer in the same write.
func (s *Store) UpdateTransaction(ctx context.Context, tx *models.Transaction, expected models.TransactionStatus) error {
	readVersion := tx.Version
	next := *tx
	next.Version = readVersion + 1

	txAV, err := attributevalue.MarshalMap(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	put := &types.Put{
		TableName:           aws.String(s.TransactionsTableName),
		Item:                txAV,
		ConditionExpression: aws.String("#status = :expected_status AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected_status": &types.AttributeValueMemberS{Value: string(expected)},
			":version":         &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", readVersion)},
		},
	}

	if next.Status.IsTerminal() && !expected.IsTerminal() {
		err = s.closeTransaction(ctx, put, &next)
	} else {
		_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                 put.TableName,
			Item:                      put.Item,
			ConditionExpression:       put.ConditionExpression,
			ExpressionAttributeNames:  put.ExpressionAttributeNames,
			ExpressionAttributeValues: put.ExpressionAttributeValues,
		})
	}
	if err != nil {
		if isConditionalFailure(err) {
			slog.Log(ctx, slog.LevelDebug, "conditional transaction update lost", "transaction_id", tx.Id, "expected_status", expected, "version", readVersion)
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	tx.Version = next.Version
	return nil
}

// closeTransaction writes the terminal state and deletes the open-slot guard atomically.
func (s *Store) closeTransaction(ctx context.Context, put *types.Put, tx *models.Transaction) error {
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Write the terminal transaction state.
				Put: put,
			},
			{
				// Operation 2: Release the open slot if it still points at this transaction.
				Delete: &types.Delete{
					TableName: aws.String(s.TransactionsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: openGuardKey(tx.PropertyId, tx.BuyerId)},
					},
					ConditionExpression: aws.String("attribute_not_exists(id) OR #guard = :tx_id"),
					ExpressionAttributeNames: map[string]string{
						"#guard": openGuardTxIDColumn,
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":tx_id": &types.AttributeValueMemberS{Value: tx.Id},
					},
				},
			},
		},
	}

	_, err := s.Client.TransactWriteItems(ctx, input)
	return err
}
