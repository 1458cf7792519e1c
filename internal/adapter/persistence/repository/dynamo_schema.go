package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoSchemaAPI is the subset of the DynamoDB client used to create tables.
type DynamoSchemaAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureDynamoTables creates the store tables with on-demand billing. Tables that
// already exist are left untouched.
func EnsureDynamoTables(ctx context.Context, api DynamoSchemaAPI, tables DynamoTables, logger *zap.Logger) error {
	for _, in := range dynamoTableDefinitions(tables.withDefaults()) {
		_, err := api.CreateTable(ctx, in)
		var inUse *types.ResourceInUseException
		switch {
		case errors.As(err, &inUse):
			logger.Debug("[store][dynamo] table exists", zap.String("table", aws.ToString(in.TableName)))
		case err != nil:
			return fmt.Errorf("create table %s: %w", aws.ToString(in.TableName), err)
		default:
			logger.Info("[store][dynamo] table created", zap.String("table", aws.ToString(in.TableName)))
		}
	}
	return nil
}

func dynamoTableDefinitions(t DynamoTables) []*dynamodb.CreateTableInput {
	str := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
	}
	hash := func(name string) types.KeySchemaElement {
		return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}
	}
	rng := func(name string) types.KeySchemaElement {
		return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeRange}
	}
	byID := func(table string) *dynamodb.CreateTableInput {
		return &dynamodb.CreateTableInput{
			TableName:            aws.String(table),
			AttributeDefinitions: []types.AttributeDefinition{str("id")},
			KeySchema:            []types.KeySchemaElement{hash("id")},
			BillingMode:          types.BillingModePayPerRequest,
		}
	}

	orders := byID(t.Orders)
	orders.AttributeDefinitions = append(orders.AttributeDefinitions, str("status"), str("clearing_ends_at"))
	orders.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
		IndexName:  aws.String(ordersClearingIndex),
		KeySchema:  []types.KeySchemaElement{hash("status"), rng("clearing_ends_at")},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}

	storno := byID(t.StornoRequests)
	storno.AttributeDefinitions = append(storno.AttributeDefinitions, str("status"))
	storno.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
		IndexName:  aws.String(stornoStatusIndex),
		KeySchema:  []types.KeySchemaElement{hash("status")},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}

	return []*dynamodb.CreateTableInput{
		byID(t.Drafts),
		byID(t.Escrows),
		orders,
		{
			TableName:            aws.String(t.TimeEntries),
			AttributeDefinitions: []types.AttributeDefinition{str("order_id"), str("id")},
			KeySchema:            []types.KeySchemaElement{hash("order_id"), rng("id")},
			BillingMode:          types.BillingModePayPerRequest,
		},
		storno,
		{
			TableName:            aws.String(t.ProviderStats),
			AttributeDefinitions: []types.AttributeDefinition{str("provider_id")},
			KeySchema:            []types.KeySchemaElement{hash("provider_id")},
			BillingMode:          types.BillingModePayPerRequest,
		},
	}
}
