package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/property-escrow/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	TransactionsTableName string
	PropertiesTableName   string
	UsersTableName        string
}

// New creates a new Store.
func New(client DynamoDBAPI, transactionsTable, propertiesTable, usersTable string) *Store {
	return &Store{
		Client:                client,
		TransactionsTableName: transactionsTable,
		PropertiesTableName:   propertiesTable,
		UsersTableName:        usersTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	statusUpdatedAtGSI  = "status-updated_at-index"
	propertyCreatedGSI  = "property_id-created_at-index"
	openGuardKeyPrefix  = "open#"
	refGuardKeyPrefix   = "payref#"
	openGuardTxIDColumn = "guard_tx_id"
)

// openGuardKey is the id of the item that reserves the single open transaction for a property and buyer.
func openGuardKey(propertyID, buyerID string) string {
	return openGuardKeyPrefix + propertyID + "#" + buyerID
}

// refGuardKey is the id of the item that ties a card payment reference to one transaction.
func refGuardKey(reference string) string {
	return refGuardKeyPrefix + reference
}

// isConditionalFailure reports whether err is a failed ConditionExpression, either from a
// single-item write or from any item of a TransactWriteItems call.
func isConditionalFailure(err error) bool {
	var condCheckFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condCheckFailed) {
		return true
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}
