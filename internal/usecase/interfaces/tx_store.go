package interfaces

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
)

// TxOp is the closed set of writes the billing core can compose into one
// atomic commit. The DynamoDB implementation maps the batch to a single
// TransactWriteItems call: either all writes apply or none do.
//
// Puts are whole-item writes, so entity updates are expressed as a put of
// the already-mutated entity.

type TxOp interface {
	isTxOp()
}

type TxPutBudget struct {
	Budget entities.Budget
}

type TxDeleteBudget struct {
	BudgetID string
}

type TxPutMilestone struct {
	Milestone entities.Milestone
}

type TxDeleteMilestone struct {
	MilestoneID string
}

type TxPutPayment struct {
	Payment entities.Payment
}

type TxPutExchangeRate struct {
	Rate entities.ExchangeRate
}

type TxDeactivateExchangeRate struct {
	RateID string
}

func (TxPutBudget) isTxOp()              {}
func (TxDeleteBudget) isTxOp()           {}
func (TxPutMilestone) isTxOp()           {}
func (TxDeleteMilestone) isTxOp()        {}
func (TxPutPayment) isTxOp()             {}
func (TxPutExchangeRate) isTxOp()        {}
func (TxDeactivateExchangeRate) isTxOp() {}

// ITransactionalStore commits a batch of writes atomically. An empty batch
// is a no-op.

type ITransactionalStore interface {
	Commit(ctx context.Context, ops ...TxOp) error
}
