package database

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type tableSpec struct {
	envKey       string
	defaultName  string
	partitionKey string
	sortKey      string
	indexes      []indexSpec
}

type indexSpec struct {
	name         string
	partitionKey string
	sortKey      string
}

// billingTables describes the tables the billing core expects. The index
// names must match the constants in the repository package.
var billingTables = []tableSpec{
	{envKey: "BUDGETS_TABLE", defaultName: "budgets", partitionKey: "id", indexes: []indexSpec{
		{name: "job_id-index", partitionKey: "job_id"},
		{name: "created_by-index", partitionKey: "created_by"},
	}},
	{envKey: "MILESTONES_TABLE", defaultName: "milestones", partitionKey: "id", indexes: []indexSpec{
		{name: "budget_id-index", partitionKey: "budget_id"},
	}},
	{envKey: "PAYMENTS_TABLE", defaultName: "payments", partitionKey: "id", indexes: []indexSpec{
		{name: "budget_id-index", partitionKey: "budget_id"},
	}},
	{envKey: "CURRENCIES_TABLE", defaultName: "currencies", partitionKey: "code"},
	{envKey: "EXCHANGE_RATES_TABLE", defaultName: "exchange_rates", partitionKey: "id", indexes: []indexSpec{
		{name: "pair-index", partitionKey: "pair", sortKey: "effective_date"},
	}},
	{envKey: "BILLING_EVENTS_TABLE", defaultName: "billing_events", partitionKey: "id", indexes: []indexSpec{
		{name: "job_id-index", partitionKey: "job_id"},
	}},
}

// EnsureBillingTables creates the billing tables on the configured
// endpoint, skipping any that already exist. Meant for local DynamoDB and
// dev stacks; production tables are provisioned by infrastructure code.
func EnsureBillingTables(ctx context.Context, ddb *dynamodb.Client) error {
	for _, spec := range billingTables {
		name := getenvDefault(spec.envKey, spec.defaultName)
		if err := createTable(ctx, ddb, name, spec); err != nil {
			var exists *types.ResourceInUseException
			if errors.As(err, &exists) {
				log.Printf("[database][tables] exists name=%s", name)
				continue
			}
			return err
		}
		log.Printf("[database][tables] created name=%s", name)
	}
	return nil
}

func createTable(ctx context.Context, ddb *dynamodb.Client, name string, spec tableSpec) error {
	attrs := map[string]struct{}{spec.partitionKey: {}}
	keySchema := []types.KeySchemaElement{
		{AttributeName: aws.String(spec.partitionKey), KeyType: types.KeyTypeHash},
	}
	if spec.sortKey != "" {
		attrs[spec.sortKey] = struct{}{}
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(spec.sortKey), KeyType: types.KeyTypeRange,
		})
	}

	var gsis []types.GlobalSecondaryIndex
	for _, idx := range spec.indexes {
		attrs[idx.partitionKey] = struct{}{}
		schema := []types.KeySchemaElement{
			{AttributeName: aws.String(idx.partitionKey), KeyType: types.KeyTypeHash},
		}
		if idx.sortKey != "" {
			attrs[idx.sortKey] = struct{}{}
			schema = append(schema, types.KeySchemaElement{
				AttributeName: aws.String(idx.sortKey), KeyType: types.KeyTypeRange,
			})
		}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  schema,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	defs := make([]types.AttributeDefinition, 0, len(attrs))
	for attr := range attrs {
		defs = append(defs, types.AttributeDefinition{
			AttributeName: aws.String(attr),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}

	input := &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		AttributeDefinitions: defs,
		KeySchema:            keySchema,
		BillingMode:          types.BillingModePayPerRequest,
	}
	if len(gsis) > 0 {
		input.GlobalSecondaryIndexes = gsis
	}

	_, err := ddb.CreateTable(ctx, input)
	return err
}
