package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrInvalidPaymentID      = errors.New("invalid payment id")
	ErrMilestoneNotCompleted = errors.New("milestone not completed")
)

// PaymentInput carries the caller-supplied fields for a new payment.
// Currency defaults to the budget's currency when empty.

type PaymentInput struct {
	Amount      decimal.Decimal
	Currency    string
	Reference   string
	Description string
	Notes       string
}

// IPaymentUseCase creates and updates payments against a budget or a
// completed milestone. New payments start PENDING; COMPLETED is reached
// only through an explicit UpdateStatus call.

type IPaymentUseCase interface {
	ProcessForMilestone(ctx context.Context, milestoneID string, input PaymentInput, processedBy string) (entities.Payment, error)
	ProcessForBudget(ctx context.Context, jobID string, input PaymentInput, processedBy string) (entities.Payment, error)
	UpdateStatus(ctx context.Context, paymentID string, newStatus entities.PaymentStatus, updatedBy, failureReason string) (entities.Payment, error)
}

type PaymentUseCase struct {
	repo          interfaces.IPaymentRepository
	milestoneRepo interfaces.IMilestoneRepository
	budgetRepo    interfaces.IBudgetRepository
	events        interfaces.IEventRecorder
	notifier      interfaces.INotificationDispatcher
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	milestoneRepo interfaces.IMilestoneRepository,
	budgetRepo interfaces.IBudgetRepository,
	events interfaces.IEventRecorder,
	notifier interfaces.INotificationDispatcher,
) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, milestoneRepo: milestoneRepo, budgetRepo: budgetRepo, events: events, notifier: notifier}
}

// ProcessForMilestone creates a payment against a milestone. The milestone
// must already be COMPLETED; the amount check runs before any persistence
// write.
func (u *PaymentUseCase) ProcessForMilestone(ctx context.Context, milestoneID string, input PaymentInput, processedBy string) (entities.Payment, error) {
	milestoneID = strings.TrimSpace(milestoneID)
	if milestoneID == "" {
		return entities.Payment{}, ErrInvalidMilestoneID
	}

	m, err := u.milestoneRepo.GetByID(ctx, milestoneID)
	if err != nil {
		return entities.Payment{}, err
	}
	if m.ID == "" {
		return entities.Payment{}, ErrMilestoneNotFound
	}
	if m.Status != entities.MilestoneStatusCompleted {
		return entities.Payment{}, ErrMilestoneNotCompleted
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return entities.Payment{}, ErrInvalidAmount
	}

	b, err := u.budgetRepo.GetByID(ctx, m.BudgetID)
	if err != nil {
		return entities.Payment{}, err
	}
	if b.ID == "" {
		return entities.Payment{}, ErrBudgetNotFound
	}

	return u.create(ctx, b, m.ID, entities.PaymentTypeMilestone, input, processedBy)
}

// ProcessForBudget creates a lump-sum payment directly against the job's
// budget, without a milestone reference.
func (u *PaymentUseCase) ProcessForBudget(ctx context.Context, jobID string, input PaymentInput, processedBy string) (entities.Payment, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Payment{}, ErrInvalidJobID
	}

	b, err := u.budgetRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return entities.Payment{}, err
	}
	if b.ID == "" {
		return entities.Payment{}, ErrBudgetNotFound
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return entities.Payment{}, ErrInvalidAmount
	}

	return u.create(ctx, b, "", entities.PaymentTypeLumpSum, input, processedBy)
}

// UpdateStatus moves a payment to a new status. Beyond existence there is
// no business-rule gating here; enum membership is the schema's concern.
func (u *PaymentUseCase) UpdateStatus(ctx context.Context, paymentID string, newStatus entities.PaymentStatus, updatedBy, failureReason string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	now := time.Now().UTC()
	oldStatus := p.Status
	p.Status = newStatus
	p.UpdatedAt = now
	switch newStatus {
	case entities.PaymentStatusCompleted:
		p.ProcessedAt = &now
		p.ProcessedBy = updatedBy
		p.FailureReason = ""
	case entities.PaymentStatusFailed:
		p.FailureReason = failureReason
	}

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		return entities.Payment{}, err
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	log.Printf("[payment][usecase] status updated payment_id=%s old=%s new=%s", updated.ID, oldStatus, updated.Status)

	jobID := ""
	if b, err := u.budgetRepo.GetByID(ctx, updated.BudgetID); err == nil {
		jobID = b.JobID
	}
	recordEvent(ctx, u.events, entities.PaymentStatusChanged{
		JobID:     jobID,
		PaymentID: updated.ID,
		OldStatus: oldStatus,
		NewStatus: updated.Status,
		UpdatedBy: updatedBy,
	})
	return updated, nil
}

func (u *PaymentUseCase) create(ctx context.Context, b entities.Budget, milestoneID string, paymentType entities.PaymentType, input PaymentInput, processedBy string) (entities.Payment, error) {
	currency := normalizeCurrencyCode(input.Currency)
	if currency == "" {
		currency = b.Currency
	}

	now := time.Now().UTC()
	p := entities.Payment{
		ID:          uuid.NewString(),
		BudgetID:    b.ID,
		MilestoneID: milestoneID,
		Amount:      input.Amount,
		Currency:    currency,
		PaymentType: paymentType,
		Status:      entities.PaymentStatusPending,
		Reference:   input.Reference,
		Description: input.Description,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] created job_id=%s payment_id=%s type=%s amount=%s %s", b.JobID, created.ID, created.PaymentType, created.Amount.String(), created.Currency)

	recordEvent(ctx, u.events, entities.PaymentProcessed{
		JobID:       b.JobID,
		BudgetID:    b.ID,
		PaymentID:   created.ID,
		MilestoneID: milestoneID,
		Amount:      created.Amount,
		Currency:    created.Currency,
		PaymentType: created.PaymentType,
		ProcessedBy: processedBy,
	})
	dispatchNotification(ctx, u.notifier, u.events, NotificationIntent{
		JobID:      b.JobID,
		ActorID:    processedBy,
		EmailTo:    b.CreatedBy,
		Subject:    "Payment created",
		Template:   "payment_created",
		PushUserID: b.CreatedBy,
		PushTitle:  "Payment created",
		PushBody:   created.Amount.String() + " " + created.Currency,
		Data: map[string]string{
			"job_id":     b.JobID,
			"payment_id": created.ID,
		},
	})
	return created, nil
}
