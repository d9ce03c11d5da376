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
	defaultMilestonesTableName = "milestones"
	milestonesBudgetIDIndex    = "budget_id-index"
)

type milestoneItem struct {
	ID                 string   `dynamodbav:"id"`
	BudgetID           string   `dynamodbav:"budget_id"`
	Name               string   `dynamodbav:"name"`
	Description        string   `dynamodbav:"description,omitempty"`
	Amount             string   `dynamodbav:"amount"`
	Percentage         *float64 `dynamodbav:"percentage,omitempty"`
	Status             string   `dynamodbav:"status"`
	DueDate            string   `dynamodbav:"due_date,omitempty"`
	Deliverables       []string `dynamodbav:"deliverables,omitempty"`
	AcceptanceCriteria string   `dynamodbav:"acceptance_criteria,omitempty"`
	Notes              string   `dynamodbav:"notes,omitempty"`
	CompletedAt        string   `dynamodbav:"completed_at,omitempty"`
	CompletedBy        string   `dynamodbav:"completed_by,omitempty"`
	CreatedAt          string   `dynamodbav:"created_at"`
	UpdatedAt          string   `dynamodbav:"updated_at"`
}

// MilestoneDynamoRepository persists Milestone entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: budget_id-index (PK: budget_id)

type MilestoneDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IMilestoneRepository = (*MilestoneDynamoRepository)(nil)

func NewMilestoneDynamoRepository(ddb *dynamodb.Client) *MilestoneDynamoRepository {
	return &MilestoneDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("MILESTONES_TABLE", defaultMilestonesTableName),
	}
}

func (r *MilestoneDynamoRepository) Create(ctx context.Context, m entities.Milestone) (entities.Milestone, error) {
	av, err := attributevalue.MarshalMap(toMilestoneItem(m))
	if err != nil {
		return entities.Milestone{}, err
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
		return entities.Milestone{}, err
	}
	return m, nil
}

func (r *MilestoneDynamoRepository) GetByID(ctx context.Context, id string) (entities.Milestone, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Milestone{}, err
	}
	if len(out.Item) == 0 {
		return entities.Milestone{}, nil
	}

	var it milestoneItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Milestone{}, err
	}
	return fromMilestoneItem(it), nil
}

func (r *MilestoneDynamoRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]entities.Milestone, error) {
	var milestones []entities.Milestone
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(milestonesBudgetIDIndex),
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
			var it milestoneItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			milestones = append(milestones, fromMilestoneItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return milestones, nil
}

func toMilestoneItem(m entities.Milestone) milestoneItem {
	return milestoneItem{
		ID:                 m.ID,
		BudgetID:           m.BudgetID,
		Name:               m.Name,
		Description:        m.Description,
		Amount:             m.Amount.String(),
		Percentage:         m.Percentage,
		Status:             string(m.Status),
		DueDate:            formatTimePtr(m.DueDate),
		Deliverables:       m.Deliverables,
		AcceptanceCriteria: m.AcceptanceCriteria,
		Notes:              m.Notes,
		CompletedAt:        formatTimePtr(m.CompletedAt),
		CompletedBy:        m.CompletedBy,
		CreatedAt:          formatTime(m.CreatedAt),
		UpdatedAt:          formatTime(m.UpdatedAt),
	}
}

func fromMilestoneItem(it milestoneItem) entities.Milestone {
	return entities.Milestone{
		ID:                 it.ID,
		BudgetID:           it.BudgetID,
		Name:               it.Name,
		Description:        it.Description,
		Amount:             parseDecimal(it.Amount),
		Percentage:         it.Percentage,
		Status:             entities.MilestoneStatus(it.Status),
		DueDate:            parseTimePtr(it.DueDate),
		Deliverables:       it.Deliverables,
		AcceptanceCriteria: it.AcceptanceCriteria,
		Notes:              it.Notes,
		CompletedAt:        parseTimePtr(it.CompletedAt),
		CompletedBy:        it.CompletedBy,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
