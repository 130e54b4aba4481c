package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/chris/property-escrow/pkg/storage/dynamodb/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListTransactionsByStatus(t *testing.T) {
	txs := []models.Transaction{
		{Id: uuid.New().String(), Status: models.PAYMENT_INITIATED},
		{Id: uuid.New().String(), Status: models.PAYMENT_INITIATED},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		var txsAV []map[string]types.AttributeValue
		for _, tx := range txs {
			av, err := attributevalue.MarshalMap(tx)
			assert.NoError(t, err)
			txsAV = append(txsAV, av)
		}
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			status := in.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS)
			return *in.IndexName == "status-updated_at-index" && status.Value == "payment_initiated" && *in.Limit == 25
		})).Return(&dynamodb.QueryOutput{Items: txsAV}, nil)

		result, err := store.ListTransactionsByStatus(context.Background(), models.PAYMENT_INITIATED, time.Now(), 25)

		assert.NoError(t, err)
		assert.Equal(t, txs, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := store.ListTransactionsByStatus(context.Background(), models.PAYMENT_INITIATED, time.Now(), 0)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query transactions by status")
		mockClient.AssertExpectations(t)
	})
}

func TestGetLatestForUser(t *testing.T) {
	latest := models.Transaction{Id: uuid.New().String(), PropertyId: "prop1", BuyerId: "buyer1", SellerId: "seller1"}

	t.Run("Found On Second Page", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		lastKey := map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "x"}}
		mockClient.On("Query", mock.Anything, mock.Anything).Once().Return(&dynamodb.QueryOutput{LastEvaluatedKey: lastKey}, nil)
		latestAV, _ := attributevalue.MarshalMap(latest)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{latestAV}}, nil)

		result, err := store.GetLatestForUser(context.Background(), "prop1", "seller1")

		assert.NoError(t, err)
		assert.Equal(t, latest.Id, result.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("None", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		_, err := store.GetLatestForUser(context.Background(), "prop1", "stranger")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}
