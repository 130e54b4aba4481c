package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/property-escrow/pkg/storage"
)

// ReservePaymentReference writes the guard item for a card payment reference unless another transaction owns it.
func (s *Store) ReservePaymentReference(ctx context.Context, reference, txID string) error {
	_, err := s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Item: map[string]types.AttributeValue{
			"id":                &types.AttributeValueMemberS{Value: refGuardKey(reference)},
			openGuardTxIDColumn: &types.AttributeValueMemberS{Value: txID},
		},
		ConditionExpression: aws.String("attribute_not_exists(id) OR #guard = :tx_id"),
		ExpressionAttributeNames: map[string]string{
			"#guard": openGuardTxIDColumn,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tx_id": &types.AttributeValueMemberS{Value: txID},
		},
	})
	if err != nil {
		if isConditionalFailure(err) {
			slog.Log(ctx, slog.LevelWarn, "payment reference already reserved", "reference", reference, "transaction_id", txID)
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to reserve payment reference: %w", err)
	}
	return nil
}
