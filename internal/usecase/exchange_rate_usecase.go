package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrRateNotFound     = errors.New("exchange rate not found")
	ErrInvalidRate      = errors.New("invalid exchange rate")
	ErrSameCurrencyPair = errors.New("cannot set a rate for the same currency pair")
)

const (
	defaultRateHistoryLimit = 50
	maxRateHistoryLimit     = 200
)

// RateChange reports the outcome of SetRate. OldRate is nil when the pair
// had no prior active rate.

type RateChange struct {
	FromCurrency  string
	ToCurrency    string
	OldRate       *decimal.Decimal
	NewRate       decimal.Decimal
	EffectiveDate time.Time
	Source        entities.RateSource
}

// IExchangeRateUseCase is the exchange rate ledger: time-stamped,
// directional rates with one active record per pair and append-only
// history.

type IExchangeRateUseCase interface {
	GetRate(ctx context.Context, from, to string) (entities.ExchangeRate, error)
	SetRate(ctx context.Context, from, to string, rate decimal.Decimal, setBy string) (RateChange, error)
	GetHistory(ctx context.Context, from, to string, limit int) ([]entities.ExchangeRate, error)
}

type ExchangeRateUseCase struct {
	repo       interfaces.IExchangeRateRepository
	currencies ICurrencyUseCase
	tx         interfaces.ITransactionalStore
}

var _ IExchangeRateUseCase = (*ExchangeRateUseCase)(nil)

func NewExchangeRateUseCase(repo interfaces.IExchangeRateRepository, currencies ICurrencyUseCase, tx interfaces.ITransactionalStore) *ExchangeRateUseCase {
	return &ExchangeRateUseCase{repo: repo, currencies: currencies, tx: tx}
}

// GetRate resolves the active rate for a directed pair. Same-currency
// lookups short-circuit to a synthetic identity rate without touching
// storage; that record is never persisted.
func (u *ExchangeRateUseCase) GetRate(ctx context.Context, from, to string) (entities.ExchangeRate, error) {
	from = normalizeCurrencyCode(from)
	to = normalizeCurrencyCode(to)

	if from != "" && from == to {
		return entities.ExchangeRate{
			FromCurrency:  from,
			ToCurrency:    to,
			Rate:          decimal.NewFromInt(1),
			EffectiveDate: time.Now().UTC(),
			Source:        entities.RateSourceSameCurrency,
			IsActive:      true,
		}, nil
	}

	if _, ok, err := u.currencies.Validate(ctx, from); err != nil {
		return entities.ExchangeRate{}, err
	} else if !ok {
		return entities.ExchangeRate{}, ErrInvalidCurrency
	}
	if _, ok, err := u.currencies.Validate(ctx, to); err != nil {
		return entities.ExchangeRate{}, err
	} else if !ok {
		return entities.ExchangeRate{}, ErrInvalidCurrency
	}

	rate, err := u.repo.GetActiveByPair(ctx, from, to)
	if err != nil {
		return entities.ExchangeRate{}, err
	}
	if rate.ID == "" {
		return entities.ExchangeRate{}, ErrRateNotFound
	}
	return rate, nil
}

// SetRate replaces the active rate for a pair. The deactivation of the
// prior record and the insert of the new one commit in one transaction so
// the pair never observes zero or two active rates.
func (u *ExchangeRateUseCase) SetRate(ctx context.Context, from, to string, rate decimal.Decimal, setBy string) (RateChange, error) {
	from = normalizeCurrencyCode(from)
	to = normalizeCurrencyCode(to)

	if rate.LessThanOrEqual(decimal.Zero) {
		return RateChange{}, ErrInvalidRate
	}
	if from != "" && from == to {
		return RateChange{}, ErrSameCurrencyPair
	}

	if _, ok, err := u.currencies.Validate(ctx, from); err != nil {
		return RateChange{}, err
	} else if !ok {
		return RateChange{}, ErrInvalidCurrency
	}
	if _, ok, err := u.currencies.Validate(ctx, to); err != nil {
		return RateChange{}, err
	} else if !ok {
		return RateChange{}, ErrInvalidCurrency
	}

	current, err := u.repo.GetActiveByPair(ctx, from, to)
	if err != nil {
		return RateChange{}, err
	}

	now := time.Now().UTC()
	record := entities.ExchangeRate{
		ID:            uuid.NewString(),
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          rate,
		EffectiveDate: now,
		Source:        entities.RateSourceManual,
		IsActive:      true,
		CreatedBy:     setBy,
		CreatedAt:     now,
	}

	ops := make([]interfaces.TxOp, 0, 2)
	if current.ID != "" {
		ops = append(ops, interfaces.TxDeactivateExchangeRate{RateID: current.ID})
	}
	ops = append(ops, interfaces.TxPutExchangeRate{Rate: record})

	if err := u.tx.Commit(ctx, ops...); err != nil {
		return RateChange{}, err
	}

	change := RateChange{
		FromCurrency:  from,
		ToCurrency:    to,
		NewRate:       rate,
		EffectiveDate: now,
		Source:        entities.RateSourceManual,
	}
	if current.ID != "" {
		old := current.Rate
		change.OldRate = &old
	}
	log.Printf("[rates][usecase] set rate pair=%s->%s rate=%s set_by=%s replaced=%t", from, to, rate.String(), setBy, current.ID != "")
	return change, nil
}

// GetHistory returns the newest-first rate records for a pair, active and
// inactive alike.
func (u *ExchangeRateUseCase) GetHistory(ctx context.Context, from, to string, limit int) ([]entities.ExchangeRate, error) {
	from = normalizeCurrencyCode(from)
	to = normalizeCurrencyCode(to)
	if from == "" || to == "" {
		return nil, ErrInvalidCurrency
	}

	if limit <= 0 {
		limit = defaultRateHistoryLimit
	}
	if limit > maxRateHistoryLimit {
		limit = maxRateHistoryLimit
	}
	return u.repo.ListByPair(ctx, from, to, limit)
}
