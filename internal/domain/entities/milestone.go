package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MilestoneStatus forms a strict forward chain:
//
//	PENDING -> IN_PROGRESS -> COMPLETED
//
// Transitions never regress; same-state updates are accepted as no-ops.
// A COMPLETED milestone is frozen: it cannot be deleted and its core fields
// cannot be mutated further (only payment processing may reference it).

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "PENDING"
	MilestoneStatusInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneStatusCompleted  MilestoneStatus = "COMPLETED"
)

// Rank maps the status chain to a comparable position. Unknown statuses
// rank below every valid one so they can never be transitioned into.
func (s MilestoneStatus) Rank() int {
	switch s {
	case MilestoneStatusPending:
		return 0
	case MilestoneStatusInProgress:
		return 1
	case MilestoneStatusCompleted:
		return 2
	default:
		return -1
	}
}

// Milestone is a deliverable-tied checkpoint within a Budget.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (budget_id-index): budget_id

type Milestone struct {
	ID                 string          `json:"id"`
	BudgetID           string          `json:"budget_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Percentage         *float64        `json:"percentage,omitempty"`
	Status             MilestoneStatus `json:"status"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	Deliverables       []string        `json:"deliverables,omitempty"`
	AcceptanceCriteria string          `json:"acceptance_criteria,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	CompletedBy        string          `json:"completed_by,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
