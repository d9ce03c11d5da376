package interfaces

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
)

// IExchangeRateRepository abstracts reads on the append-only exchange rate
// ledger. Writes (insert new active + deactivate prior active) go through
// ITransactionalStore so the at-most-one-active invariant holds atomically.

type IExchangeRateRepository interface {
	GetActiveByPair(ctx context.Context, from, to string) (entities.ExchangeRate, error)
	ListByPair(ctx context.Context, from, to string, limit int) ([]entities.ExchangeRate, error)
}
