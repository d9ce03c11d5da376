package interfaces

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
)

// ICurrencyRepository abstracts DynamoDB persistence for Currency
// reference data.

type ICurrencyRepository interface {
	Create(ctx context.Context, c entities.Currency) (entities.Currency, error)
	GetByCode(ctx context.Context, code string) (entities.Currency, error)
	ListActive(ctx context.Context) ([]entities.Currency, error)
	Update(ctx context.Context, c entities.Currency) (entities.Currency, error)
}
