package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetType distinguishes fixed-price contracts from hourly engagements.

type BudgetType string

const (
	BudgetTypeFixed  BudgetType = "FIXED"
	BudgetTypeHourly BudgetType = "HOURLY"
)

// BudgetStatus is the budget lifecycle. ACTIVE is the initial state;
// COMPLETED is terminal and reached only through the milestone completion
// check, never by direct request.

type BudgetStatus string

const (
	BudgetStatusActive    BudgetStatus = "ACTIVE"
	BudgetStatusCompleted BudgetStatus = "COMPLETED"
)

// Budget is the financial contract for one job.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (job_id-index): job_id — enforces the 1:1 Budget-per-Job lookup
//   - GSI2 (created_by-index): created_by
//
// Monetary representation:
//   - Amount uses decimal.Decimal so currency granularity checks and
//     conversions stay exact.

type Budget struct {
	ID             string          `json:"id"`
	JobID          string          `json:"job_id"`
	Type           BudgetType      `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	EstimatedHours *float64        `json:"estimated_hours,omitempty"`
	Status         BudgetStatus    `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
