package repository

import (
	"context"
	"errors"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsBudgetIDIndex    = "budget_id-index"
)

type paymentItem struct {
	ID            string `dynamodbav:"id"`
	BudgetID      string `dynamodbav:"budget_id"`
	MilestoneID   string `dynamodbav:"milestone_id,omitempty"`
	Amount        string `dynamodbav:"amount"`
	Currency      string `dynamodbav:"currency"`
	PaymentType   string `dynamodbav:"payment_type"`
	Status        string `dynamodbav:"status"`
	Reference     string `dynamodbav:"reference,omitempty"`
	Description   string `dynamodbav:"description,omitempty"`
	Notes         string `dynamodbav:"notes,omitempty"`
	ProcessedAt   string `dynamodbav:"processed_at,omitempty"`
	ProcessedBy   string `dynamodbav:"processed_by,omitempty"`
	FailureReason string `dynamodbav:"failure_reason,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: budget_id-index (PK: budget_id)

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]entities.Payment, error) {
	var payments []entities.Payment
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(paymentsBudgetIDIndex),
			KeyConditionExpression: aws.String("#budget_id = :budget_id"),
			ExpressionAttributeNames: map[string]string{
				"#budget_id": "budget_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":budget_id": &types.AttributeValueMemberS{Value: budgetID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			payments = append(payments, fromPaymentItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return payments, nil
}

// Update overwrites an existing payment. A vanished payment reports as the
// zero value, mirroring the not-found convention of the read paths.
func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:            p.ID,
		BudgetID:      p.BudgetID,
		MilestoneID:   p.MilestoneID,
		Amount:        p.Amount.String(),
		Currency:      p.Currency,
		PaymentType:   string(p.PaymentType),
		Status:        string(p.Status),
		Reference:     p.Reference,
		Description:   p.Description,
		Notes:         p.Notes,
		ProcessedAt:   formatTimePtr(p.ProcessedAt),
		ProcessedBy:   p.ProcessedBy,
		FailureReason: p.FailureReason,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:            it.ID,
		BudgetID:      it.BudgetID,
		MilestoneID:   it.MilestoneID,
		Amount:        parseDecimal(it.Amount),
		Currency:      it.Currency,
		PaymentType:   entities.PaymentType(it.PaymentType),
		Status:        entities.PaymentStatus(it.Status),
		Reference:     it.Reference,
		Description:   it.Description,
		Notes:         it.Notes,
		ProcessedAt:   parseTimePtr(it.ProcessedAt),
		ProcessedBy:   it.ProcessedBy,
		FailureReason: it.FailureReason,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
