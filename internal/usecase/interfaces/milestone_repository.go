package interfaces

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
)

// IMilestoneRepository abstracts DynamoDB persistence for Milestone.
//
// All writes except the initial insert are composed through
// ITransactionalStore: every status change or delete must commit in the
// same transaction as the budget completion re-check it triggers.

type IMilestoneRepository interface {
	Create(ctx context.Context, m entities.Milestone) (entities.Milestone, error)
	GetByID(ctx context.Context, id string) (entities.Milestone, error)
	ListByBudgetID(ctx context.Context, budgetID string) ([]entities.Milestone, error)
}
