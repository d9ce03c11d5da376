package repository

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultBudgetsTableName = "budgets"
	budgetsJobIDIndex       = "job_id-index"
	budgetsCreatedByIndex   = "created_by-index"
)

type budgetItem struct {
	ID             string   `dynamodbav:"id"`
	JobID          string   `dynamodbav:"job_id"`
	Type           string   `dynamodbav:"type"`
	Amount         string   `dynamodbav:"amount"`
	Currency       string   `dynamodbav:"currency"`
	EstimatedHours *float64 `dynamodbav:"estimated_hours,omitempty"`
	Status         string   `dynamodbav:"status"`
	Notes          string   `dynamodbav:"notes,omitempty"`
	CreatedBy      string   `dynamodbav:"created_by"`
	ApprovedAt     string   `dynamodbav:"approved_at,omitempty"`
	CreatedAt      string   `dynamodbav:"created_at"`
	UpdatedAt      string   `dynamodbav:"updated_at"`
}

// BudgetDynamoRepository persists Budget entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_id-index (PK: job_id) — the 1:1 budget-per-job lookup
//   - GSI: created_by-index (PK: created_by)

type BudgetDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb *dynamodb.Client) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BUDGETS_TABLE", defaultBudgetsTableName),
	}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	av, err := attributevalue.MarshalMap(toBudgetItem(b))
	if err != nil {
		return entities.Budget{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Budget{}, err
	}
	if len(out.Item) == 0 {
		return entities.Budget{}, nil
	}

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func (r *BudgetDynamoRepository) GetByJobID(ctx context.Context, jobID string) (entities.Budget, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(budgetsJobIDIndex),
		KeyConditionExpression: aws.String("#job_id = :job_id"),
		ExpressionAttributeNames: map[string]string{
			"#job_id": "job_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":job_id": &types.AttributeValueMemberS{Value: jobID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Budget{}, err
	}
	if len(out.Items) == 0 {
		return entities.Budget{}, nil
	}

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func (r *BudgetDynamoRepository) ListByCreator(ctx context.Context, userID string) ([]entities.Budget, error) {
	var budgets []entities.Budget
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(budgetsCreatedByIndex),
			KeyConditionExpression: aws.String("#created_by = :created_by"),
			ExpressionAttributeNames: map[string]string{
				"#created_by": "created_by",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":created_by": &types.AttributeValueMemberS{Value: userID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it budgetItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			budgets = append(budgets, fromBudgetItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return budgets, nil
}

func (r *BudgetDynamoRepository) ListAll(ctx context.Context) ([]entities.Budget, error) {
	var budgets []entities.Budget
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it budgetItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			budgets = append(budgets, fromBudgetItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return budgets, nil
}

func (r *BudgetDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toBudgetItem(b entities.Budget) budgetItem {
	return budgetItem{
		ID:             b.ID,
		JobID:          b.JobID,
		Type:           string(b.Type),
		Amount:         b.Amount.String(),
		Currency:       b.Currency,
		EstimatedHours: b.EstimatedHours,
		Status:         string(b.Status),
		Notes:          b.Notes,
		CreatedBy:      b.CreatedBy,
		ApprovedAt:     formatTimePtr(b.ApprovedAt),
		CreatedAt:      formatTime(b.CreatedAt),
		UpdatedAt:      formatTime(b.UpdatedAt),
	}
}

func fromBudgetItem(it budgetItem) entities.Budget {
	return entities.Budget{
		ID:             it.ID,
		JobID:          it.JobID,
		Type:           entities.BudgetType(it.Type),
		Amount:         parseDecimal(it.Amount),
		Currency:       it.Currency,
		EstimatedHours: it.EstimatedHours,
		Status:         entities.BudgetStatus(it.Status),
		Notes:          it.Notes,
		CreatedBy:      it.CreatedBy,
		ApprovedAt:     parseTimePtr(it.ApprovedAt),
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
