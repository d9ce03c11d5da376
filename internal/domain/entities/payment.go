package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies how a payment attaches to the budget.

type PaymentType string

const (
	PaymentTypeMilestone PaymentType = "MILESTONE"
	PaymentTypeLumpSum   PaymentType = "LUMP_SUM"
	PaymentTypeBonus     PaymentType = "BONUS"
	PaymentTypeRefund    PaymentType = "REFUND"
)

// PaymentStatus represents the payment processing outcome. New payments
// start PENDING and require an explicit status update to reach COMPLETED.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment is a monetary transfer record tied to a Budget and optionally a
// Milestone. Amount is always strictly positive; a milestone-linked payment
// may only be created while the referenced milestone is COMPLETED.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (budget_id-index): budget_id

type Payment struct {
	ID            string          `json:"id"`
	BudgetID      string          `json:"budget_id"`
	MilestoneID   string          `json:"milestone_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentType   PaymentType     `json:"payment_type"`
	Status        PaymentStatus   `json:"status"`
	Reference     string          `json:"reference,omitempty"`
	Description   string          `json:"description,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	ProcessedBy   string          `json:"processed_by,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
