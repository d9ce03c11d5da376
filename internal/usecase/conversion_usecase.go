package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Conversion is the result of converting an amount between two currencies
// at the active rate.

type Conversion struct {
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	ConvertedAmount  decimal.Decimal
	TargetCurrency   string
	ExchangeRate     decimal.Decimal
	ConversionDate   time.Time
}

// ConvertedBudgetAmount pairs a conversion with its display string.

type ConvertedBudgetAmount struct {
	Conversion
	Formatted string
}

// BudgetCurrencyView shows a budget's base amount alongside its value in
// each requested target currency. Targets that fail to convert land in
// Errors without aborting the rest of the batch.

type BudgetCurrencyView struct {
	JobID        string
	BudgetID     string
	BaseAmount   decimal.Decimal
	BaseCurrency string
	Conversions  []ConvertedBudgetAmount
	Errors       []string
}

// IConversionUseCase computes converted amounts using the exchange rate
// ledger. Pure reads; callers may retry freely.

type IConversionUseCase interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (Conversion, error)
	BudgetInCurrencies(ctx context.Context, jobID string, targets []string) (BudgetCurrencyView, error)
}

type ConversionUseCase struct {
	rates      IExchangeRateUseCase
	currencies ICurrencyUseCase
	budgetRepo interfaces.IBudgetRepository
}

var _ IConversionUseCase = (*ConversionUseCase)(nil)

func NewConversionUseCase(rates IExchangeRateUseCase, currencies ICurrencyUseCase, budgetRepo interfaces.IBudgetRepository) *ConversionUseCase {
	return &ConversionUseCase{rates: rates, currencies: currencies, budgetRepo: budgetRepo}
}

// Convert multiplies amount by the active rate and rounds to the target
// currency's decimal places.
func (u *ConversionUseCase) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (Conversion, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Conversion{}, ErrInvalidAmount
	}

	rate, err := u.rates.GetRate(ctx, from, to)
	if err != nil {
		return Conversion{}, err
	}

	places := int32(2)
	if c, ok, err := u.currencies.Validate(ctx, to); err != nil {
		return Conversion{}, err
	} else if ok {
		places = int32(c.DecimalPlaces)
	}

	return Conversion{
		OriginalAmount:   amount,
		OriginalCurrency: rate.FromCurrency,
		ConvertedAmount:  amount.Mul(rate.Rate).Round(places),
		TargetCurrency:   rate.ToCurrency,
		ExchangeRate:     rate.Rate,
		ConversionDate:   time.Now().UTC(),
	}, nil
}

// BudgetInCurrencies converts a budget's base amount into each requested
// currency. One bad target does not abort the batch: its error is recorded
// and the remaining targets still convert.
func (u *ConversionUseCase) BudgetInCurrencies(ctx context.Context, jobID string, targets []string) (BudgetCurrencyView, error) {
	b, err := u.budgetRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return BudgetCurrencyView{}, err
	}
	if b.ID == "" {
		return BudgetCurrencyView{}, ErrBudgetNotFound
	}

	view := BudgetCurrencyView{
		JobID:        b.JobID,
		BudgetID:     b.ID,
		BaseAmount:   b.Amount,
		BaseCurrency: b.Currency,
	}

	for _, target := range targets {
		conv, err := u.Convert(ctx, b.Amount, b.Currency, target)
		if err != nil {
			log.Printf("[conversion][usecase] target failed job_id=%s target=%s err=%v", jobID, target, err)
			view.Errors = append(view.Errors, fmt.Sprintf("%s: %v", normalizeCurrencyCode(target), err))
			continue
		}

		formatted, err := u.currencies.FormatAmount(ctx, conv.ConvertedAmount, conv.TargetCurrency, true)
		if err != nil {
			formatted = conv.ConvertedAmount.String()
		}
		view.Conversions = append(view.Conversions, ConvertedBudgetAmount{Conversion: conv, Formatted: formatted})
	}
	return view, nil
}
