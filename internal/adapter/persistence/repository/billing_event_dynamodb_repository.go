package repository

import (
	"context"
	"encoding/json"
	"time"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

const defaultBillingEventsTableName = "billing_events"

type billingEventItem struct {
	ID        string `dynamodbav:"id"`
	JobID     string `dynamodbav:"job_id"`
	EventType string `dynamodbav:"event_type"`
	ActorID   string `dynamodbav:"actor_id,omitempty"`
	Payload   string `dynamodbav:"payload"`
	CreatedAt string `dynamodbav:"created_at"`
}

// BillingEventDynamoRepository appends domain events to the billing event
// log. Append-only by construction: there is no update or delete path.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_id-index (PK: job_id)

type BillingEventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEventRecorder = (*BillingEventDynamoRepository)(nil)

func NewBillingEventDynamoRepository(ddb *dynamodb.Client) *BillingEventDynamoRepository {
	return &BillingEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BILLING_EVENTS_TABLE", defaultBillingEventsTableName),
	}
}

func (r *BillingEventDynamoRepository) Record(ctx context.Context, event entities.BudgetEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(billingEventItem{
		ID:        uuid.NewString(),
		JobID:     event.Job(),
		EventType: string(event.Kind()),
		ActorID:   event.Actor(),
		Payload:   string(payload),
		CreatedAt: formatTime(time.Now().UTC()),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
