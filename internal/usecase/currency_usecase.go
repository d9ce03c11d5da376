package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency       = errors.New("invalid or unsupported currency")
	ErrInvalidCurrencyCode   = errors.New("invalid currency code")
	ErrCurrencyAlreadyExists = errors.New("currency already exists")
)

// ICurrencyUseCase is the currency registry: the authoritative list of
// supported currencies and their formatting metadata.

type ICurrencyUseCase interface {
	ListSupported(ctx context.Context) ([]entities.Currency, error)
	Validate(ctx context.Context, code string) (entities.Currency, bool, error)
	FormatAmount(ctx context.Context, amount decimal.Decimal, code string, withSymbol bool) (string, error)
	Register(ctx context.Context, c entities.Currency) (entities.Currency, error)
	Deactivate(ctx context.Context, code string) (entities.Currency, error)
}

type CurrencyUseCase struct {
	repo interfaces.ICurrencyRepository
}

var _ ICurrencyUseCase = (*CurrencyUseCase)(nil)

func NewCurrencyUseCase(repo interfaces.ICurrencyRepository) *CurrencyUseCase {
	return &CurrencyUseCase{repo: repo}
}

func (u *CurrencyUseCase) ListSupported(ctx context.Context) ([]entities.Currency, error) {
	return u.repo.ListActive(ctx)
}

// Validate resolves a currency code. An absent or inactive code fails
// softly (ok=false, nil error) so callers can choose their own failure
// mode; only store errors propagate.
func (u *CurrencyUseCase) Validate(ctx context.Context, code string) (entities.Currency, bool, error) {
	code = normalizeCurrencyCode(code)
	if code == "" {
		return entities.Currency{}, false, nil
	}

	c, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		return entities.Currency{}, false, err
	}
	if c.Code == "" || !c.IsActive {
		return entities.Currency{}, false, nil
	}
	return c, true, nil
}

func (u *CurrencyUseCase) FormatAmount(ctx context.Context, amount decimal.Decimal, code string, withSymbol bool) (string, error) {
	c, ok, err := u.Validate(ctx, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCurrency
	}

	s := amount.StringFixed(int32(c.DecimalPlaces))
	if withSymbol {
		return c.Symbol + s, nil
	}
	return s, nil
}

func (u *CurrencyUseCase) Register(ctx context.Context, c entities.Currency) (entities.Currency, error) {
	c.Code = normalizeCurrencyCode(c.Code)
	if len(c.Code) != 3 {
		return entities.Currency{}, ErrInvalidCurrencyCode
	}
	if c.DecimalPlaces < 0 {
		return entities.Currency{}, ErrInvalidCurrencyCode
	}

	existing, err := u.repo.GetByCode(ctx, c.Code)
	if err != nil {
		return entities.Currency{}, err
	}
	if existing.Code != "" {
		return entities.Currency{}, ErrCurrencyAlreadyExists
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return entities.Currency{}, err
	}
	log.Printf("[currency][usecase] registered code=%s decimal_places=%d", created.Code, created.DecimalPlaces)
	return created, nil
}

func (u *CurrencyUseCase) Deactivate(ctx context.Context, code string) (entities.Currency, error) {
	code = normalizeCurrencyCode(code)
	if code == "" {
		return entities.Currency{}, ErrInvalidCurrencyCode
	}

	c, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		return entities.Currency{}, err
	}
	if c.Code == "" {
		return entities.Currency{}, ErrInvalidCurrency
	}
	if !c.IsActive {
		return c, nil
	}

	c.IsActive = false
	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return entities.Currency{}, err
	}
	log.Printf("[currency][usecase] deactivated code=%s", updated.Code)
	return updated, nil
}

func normalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
