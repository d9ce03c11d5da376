package interfaces

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
)

// IBudgetRepository abstracts DynamoDB persistence for Budget.
//
// Not-found is reported as a zero-value Budget (ID == ""), never as an
// error; use cases translate it to their own sentinel. Status changes and
// milestone-replacing updates go through ITransactionalStore instead of
// this interface so they commit atomically with their sibling writes.

type IBudgetRepository interface {
	Create(ctx context.Context, b entities.Budget) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	GetByJobID(ctx context.Context, jobID string) (entities.Budget, error)
	ListByCreator(ctx context.Context, userID string) ([]entities.Budget, error)
	ListAll(ctx context.Context) ([]entities.Budget, error)
	Delete(ctx context.Context, id string) error
}
