package entities

import "github.com/shopspring/decimal"

// BudgetEventKind enumerates the closed set of domain events the billing
// core emits. The event sink can switch exhaustively on it.

type BudgetEventKind string

const (
	EventBudgetCreated        BudgetEventKind = "BUDGET_CREATED"
	EventBudgetUpdated        BudgetEventKind = "BUDGET_UPDATED"
	EventBudgetDeleted        BudgetEventKind = "BUDGET_DELETED"
	EventMilestoneCreated     BudgetEventKind = "MILESTONE_CREATED"
	EventMilestoneUpdated     BudgetEventKind = "MILESTONE_UPDATED"
	EventMilestoneCompleted   BudgetEventKind = "MILESTONE_COMPLETED"
	EventMilestoneDeleted     BudgetEventKind = "MILESTONE_DELETED"
	EventPaymentProcessed     BudgetEventKind = "PAYMENT_PROCESSED"
	EventPaymentStatusChanged BudgetEventKind = "PAYMENT_STATUS_CHANGED"
	EventNotificationSent     BudgetEventKind = "NOTIFICATION_SENT"
)

// BudgetEvent is the tagged union of billing domain events. Each variant
// carries its own typed payload; Job and Actor identify the job the event
// belongs to and the user who caused it.

type BudgetEvent interface {
	Kind() BudgetEventKind
	Job() string
	Actor() string
}

type BudgetCreated struct {
	JobID     string          `json:"job_id"`
	BudgetID  string          `json:"budget_id"`
	Type      BudgetType      `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	CreatedBy string          `json:"created_by"`
}

func (e BudgetCreated) Kind() BudgetEventKind { return EventBudgetCreated }
func (e BudgetCreated) Job() string           { return e.JobID }
func (e BudgetCreated) Actor() string         { return e.CreatedBy }

type BudgetUpdated struct {
	JobID         string   `json:"job_id"`
	BudgetID      string   `json:"budget_id"`
	ChangedFields []string `json:"changed_fields"`
	UpdatedBy     string   `json:"updated_by"`
}

func (e BudgetUpdated) Kind() BudgetEventKind { return EventBudgetUpdated }
func (e BudgetUpdated) Job() string           { return e.JobID }
func (e BudgetUpdated) Actor() string         { return e.UpdatedBy }

type BudgetDeleted struct {
	JobID     string `json:"job_id"`
	BudgetID  string `json:"budget_id"`
	DeletedBy string `json:"deleted_by"`
}

func (e BudgetDeleted) Kind() BudgetEventKind { return EventBudgetDeleted }
func (e BudgetDeleted) Job() string           { return e.JobID }
func (e BudgetDeleted) Actor() string         { return e.DeletedBy }

type MilestoneCreated struct {
	JobID       string `json:"job_id"`
	BudgetID    string `json:"budget_id"`
	MilestoneID string `json:"milestone_id"`
	Name        string `json:"name"`
	CreatedBy   string `json:"created_by"`
}

func (e MilestoneCreated) Kind() BudgetEventKind { return EventMilestoneCreated }
func (e MilestoneCreated) Job() string           { return e.JobID }
func (e MilestoneCreated) Actor() string         { return e.CreatedBy }

type MilestoneUpdated struct {
	JobID       string `json:"job_id"`
	BudgetID    string `json:"budget_id"`
	MilestoneID string `json:"milestone_id"`
	UpdatedBy   string `json:"updated_by"`
}

func (e MilestoneUpdated) Kind() BudgetEventKind { return EventMilestoneUpdated }
func (e MilestoneUpdated) Job() string           { return e.JobID }
func (e MilestoneUpdated) Actor() string         { return e.UpdatedBy }

type MilestoneCompleted struct {
	JobID           string `json:"job_id"`
	BudgetID        string `json:"budget_id"`
	MilestoneID     string `json:"milestone_id"`
	Name            string `json:"name"`
	Reason          string `json:"reason,omitempty"`
	BudgetCompleted bool   `json:"budget_completed"`
	CompletedBy     string `json:"completed_by"`
}

func (e MilestoneCompleted) Kind() BudgetEventKind { return EventMilestoneCompleted }
func (e MilestoneCompleted) Job() string           { return e.JobID }
func (e MilestoneCompleted) Actor() string         { return e.CompletedBy }

type MilestoneDeleted struct {
	JobID       string `json:"job_id"`
	BudgetID    string `json:"budget_id"`
	MilestoneID string `json:"milestone_id"`
	DeletedBy   string `json:"deleted_by"`
}

func (e MilestoneDeleted) Kind() BudgetEventKind { return EventMilestoneDeleted }
func (e MilestoneDeleted) Job() string           { return e.JobID }
func (e MilestoneDeleted) Actor() string         { return e.DeletedBy }

type PaymentProcessed struct {
	JobID       string          `json:"job_id"`
	BudgetID    string          `json:"budget_id"`
	PaymentID   string          `json:"payment_id"`
	MilestoneID string          `json:"milestone_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PaymentType PaymentType     `json:"payment_type"`
	ProcessedBy string          `json:"processed_by"`
}

func (e PaymentProcessed) Kind() BudgetEventKind { return EventPaymentProcessed }
func (e PaymentProcessed) Job() string           { return e.JobID }
func (e PaymentProcessed) Actor() string         { return e.ProcessedBy }

type PaymentStatusChanged struct {
	JobID     string        `json:"job_id"`
	PaymentID string        `json:"payment_id"`
	OldStatus PaymentStatus `json:"old_status"`
	NewStatus PaymentStatus `json:"new_status"`
	UpdatedBy string        `json:"updated_by"`
}

func (e PaymentStatusChanged) Kind() BudgetEventKind { return EventPaymentStatusChanged }
func (e PaymentStatusChanged) Job() string           { return e.JobID }
func (e PaymentStatusChanged) Actor() string         { return e.UpdatedBy }

type NotificationSent struct {
	JobID     string   `json:"job_id"`
	Subject   string   `json:"subject"`
	EmailSent bool     `json:"email_sent"`
	PushSent  bool     `json:"push_sent"`
	Errors    []string `json:"errors,omitempty"`
	ActorID   string   `json:"actor_id"`
}

func (e NotificationSent) Kind() BudgetEventKind { return EventNotificationSent }
func (e NotificationSent) Job() string           { return e.JobID }
func (e NotificationSent) Actor() string         { return e.ActorID }
