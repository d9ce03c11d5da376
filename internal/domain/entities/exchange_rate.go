package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource records where an exchange rate came from.
//
// SAME_CURRENCY is the synthetic identity rate returned for from==to
// lookups; it is never persisted.

type RateSource string

const (
	RateSourceManual       RateSource = "MANUAL"
	RateSourceSameCurrency RateSource = "SAME_CURRENCY"
)

// ExchangeRate is one directional rate record in the append-only ledger.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (pair-index): pair = "FROM#TO", sort key: effective_date
//
// Invariant: at most one record with IsActive=true per directed pair at any
// time. Setting a new rate deactivates the prior active record; history is
// never overwritten.

type ExchangeRate struct {
	ID            string          `json:"id"`
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
	Source        RateSource      `json:"source"`
	IsActive      bool            `json:"is_active"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
