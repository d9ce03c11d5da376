package interfaces

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
)

// IEventRecorder appends domain events to the billing event log.
//
// Recording is best-effort from the caller's point of view: use cases log
// a Record failure and carry on, it never rolls back or fails the primary
// mutation.

type IEventRecorder interface {
	Record(ctx context.Context, event entities.BudgetEvent) error
}
