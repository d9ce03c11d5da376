package repository

import (
	"context"
	"fmt"
	"log"

	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoTransactStore commits a batch of TxOps as one TransactWriteItems
// call. DynamoDB guarantees the batch applies atomically, which is what
// keeps milestone status changes, completion re-checks and rate swaps
// consistent under concurrent writers.

type DynamoTransactStore struct {
	ddb             *dynamodb.Client
	budgetsTable    string
	milestonesTable string
	paymentsTable   string
	ratesTable      string
}

var _ interfaces.ITransactionalStore = (*DynamoTransactStore)(nil)

func NewDynamoTransactStore(ddb *dynamodb.Client) *DynamoTransactStore {
	return &DynamoTransactStore{
		ddb:             ddb,
		budgetsTable:    getenvDefault("BUDGETS_TABLE", defaultBudgetsTableName),
		milestonesTable: getenvDefault("MILESTONES_TABLE", defaultMilestonesTableName),
		paymentsTable:   getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
		ratesTable:      getenvDefault("EXCHANGE_RATES_TABLE", defaultExchangeRatesTableName),
	}
}

func (s *DynamoTransactStore) Commit(ctx context.Context, ops ...interfaces.TxOp) error {
	if len(ops) == 0 {
		return nil
	}

	items := make([]types.TransactWriteItem, 0, len(ops))
	for _, op := range ops {
		item, err := s.toWriteItem(op)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	_, err := s.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		log.Printf("[store][transact] commit failed ops=%d err=%v", len(ops), err)
		return fmt.Errorf("transact write: %w", err)
	}
	return nil
}

func (s *DynamoTransactStore) toWriteItem(op interfaces.TxOp) (types.TransactWriteItem, error) {
	switch v := op.(type) {
	case interfaces.TxPutBudget:
		return s.put(s.budgetsTable, toBudgetItem(v.Budget))
	case interfaces.TxDeleteBudget:
		return s.deleteByID(s.budgetsTable, v.BudgetID), nil
	case interfaces.TxPutMilestone:
		return s.put(s.milestonesTable, toMilestoneItem(v.Milestone))
	case interfaces.TxDeleteMilestone:
		return s.deleteByID(s.milestonesTable, v.MilestoneID), nil
	case interfaces.TxPutPayment:
		return s.put(s.paymentsTable, toPaymentItem(v.Payment))
	case interfaces.TxPutExchangeRate:
		return s.put(s.ratesTable, toExchangeRateItem(v.Rate))
	case interfaces.TxDeactivateExchangeRate:
		return types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(s.ratesTable),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: v.RateID},
				},
				UpdateExpression:    aws.String("SET #is_active = :inactive"),
				ConditionExpression: aws.String("attribute_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#is_active": "is_active",
					"#id":        "id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":inactive": &types.AttributeValueMemberBOOL{Value: false},
				},
			},
		}, nil
	default:
		return types.TransactWriteItem{}, fmt.Errorf("unsupported transact op %T", op)
	}
}

func (s *DynamoTransactStore) put(table string, item any) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(table),
			Item:      av,
		},
	}, nil
}

func (s *DynamoTransactStore) deleteByID(table, id string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(table),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
		},
	}
}
