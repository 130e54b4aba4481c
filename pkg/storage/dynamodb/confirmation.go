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

var confirmationColumns = map[models.Role]string{
	models.RoleBuyer:  "is_buyer_confirmed",
	models.RoleSeller: "is_seller_confirmed",
}

// SetConfirmation sets a single counterparty flag with an UpdateItem so that concurrent buyer and
// seller confirmations both land; only the status is used as the precondition.
func (s *Store) SetConfirmation(ctx context.Context, txID string, role models.Role, at time.Time) (*models.Transaction, error) {
	column, ok := confirmationColumns[role]
	if !ok {
		return nil, fmt.Errorf("unknown confirmation role %q", role)
	}

	nowAV, err := attributevalue.Marshal(at.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for confirmation: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #flag = :true, version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#flag":   column,
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":           &types.AttributeValueMemberBOOL{Value: true},
			":inc":            &types.AttributeValueMemberN{Value: "1"},
			":now":            nowAV,
			":pending_status": &types.AttributeValueMemberS{Value: string(models.PENDING_CONFIRMATION)},
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalFailure(err) {
			return nil, storage.ErrConflict
		}
		return nil, fmt.Errorf("failed to record %s confirmation: %w", role, err)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Attributes, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal confirmed transaction: %w", err)
	}

	return &tx, nil
}
