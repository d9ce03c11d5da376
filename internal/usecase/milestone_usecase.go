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
	ErrMilestoneNotFound     = errors.New("milestone not found")
	ErrInvalidMilestoneID    = errors.New("invalid milestone id")
	ErrInvalidTransition     = errors.New("invalid milestone status transition")
	ErrCannotDeleteCompleted = errors.New("completed milestone cannot be deleted")
	ErrCannotUpdateCompleted = errors.New("completed milestone cannot be updated")
)

// MilestoneUpdate is a partial update of a milestone's ordinary fields.
// Status is deliberately absent: status changes go through UpdateStatus so
// the forward-chain invariant is enforced in exactly one place.

type MilestoneUpdate struct {
	Name               *string
	Description        *string
	Amount             *decimal.Decimal
	Percentage         *float64
	DueDate            *time.Time
	Deliverables       *[]string
	AcceptanceCriteria *string
	Notes              *string
}

// IMilestoneUseCase drives the per-milestone lifecycle
// PENDING -> IN_PROGRESS -> COMPLETED and triggers the budget completion
// re-check after every status change or delete.

type IMilestoneUseCase interface {
	Create(ctx context.Context, budgetID string, input MilestoneInput, createdBy string) (entities.Milestone, error)
	Update(ctx context.Context, milestoneID string, input MilestoneUpdate, updatedBy string) (entities.Milestone, error)
	UpdateStatus(ctx context.Context, milestoneID string, newStatus entities.MilestoneStatus, updatedBy, reason string) (entities.Milestone, error)
	Delete(ctx context.Context, milestoneID string, deletedBy string) error
}

type MilestoneUseCase struct {
	repo       interfaces.IMilestoneRepository
	budgetRepo interfaces.IBudgetRepository
	tx         interfaces.ITransactionalStore
	events     interfaces.IEventRecorder
	notifier   interfaces.INotificationDispatcher
}

var _ IMilestoneUseCase = (*MilestoneUseCase)(nil)

func NewMilestoneUseCase(
	repo interfaces.IMilestoneRepository,
	budgetRepo interfaces.IBudgetRepository,
	tx interfaces.ITransactionalStore,
	events interfaces.IEventRecorder,
	notifier interfaces.INotificationDispatcher,
) *MilestoneUseCase {
	return &MilestoneUseCase{repo: repo, budgetRepo: budgetRepo, tx: tx, events: events, notifier: notifier}
}

func (u *MilestoneUseCase) Create(ctx context.Context, budgetID string, input MilestoneInput, createdBy string) (entities.Milestone, error) {
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return entities.Milestone{}, ErrBudgetNotFound
	}

	b, err := u.budgetRepo.GetByID(ctx, budgetID)
	if err != nil {
		return entities.Milestone{}, err
	}
	if b.ID == "" {
		return entities.Milestone{}, ErrBudgetNotFound
	}

	now := time.Now().UTC()
	m := entities.Milestone{
		ID:                 uuid.NewString(),
		BudgetID:           b.ID,
		Name:               input.Name,
		Description:        input.Description,
		Amount:             input.Amount,
		Percentage:         input.Percentage,
		Status:             entities.MilestoneStatusPending,
		DueDate:            input.DueDate,
		Deliverables:       input.Deliverables,
		AcceptanceCriteria: input.AcceptanceCriteria,
		Notes:              input.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := u.repo.Create(ctx, m)
	if err != nil {
		return entities.Milestone{}, err
	}
	log.Printf("[milestone][usecase] created budget_id=%s milestone_id=%s name=%q", b.ID, created.ID, created.Name)

	recordEvent(ctx, u.events, entities.MilestoneCreated{
		JobID:       b.JobID,
		BudgetID:    b.ID,
		MilestoneID: created.ID,
		Name:        created.Name,
		CreatedBy:   createdBy,
	})
	return created, nil
}

// Update mutates ordinary fields. A COMPLETED milestone is frozen and
// rejects further core-field changes. The budget completion re-check runs
// in the same transaction as the milestone write.
func (u *MilestoneUseCase) Update(ctx context.Context, milestoneID string, input MilestoneUpdate, updatedBy string) (entities.Milestone, error) {
	m, b, err := u.load(ctx, milestoneID)
	if err != nil {
		return entities.Milestone{}, err
	}
	if m.Status == entities.MilestoneStatusCompleted {
		return entities.Milestone{}, ErrCannotUpdateCompleted
	}

	if input.Name != nil {
		m.Name = *input.Name
	}
	if input.Description != nil {
		m.Description = *input.Description
	}
	if input.Amount != nil {
		m.Amount = *input.Amount
	}
	if input.Percentage != nil {
		m.Percentage = input.Percentage
	}
	if input.DueDate != nil {
		m.DueDate = input.DueDate
	}
	if input.Deliverables != nil {
		m.Deliverables = *input.Deliverables
	}
	if input.AcceptanceCriteria != nil {
		m.AcceptanceCriteria = *input.AcceptanceCriteria
	}
	if input.Notes != nil {
		m.Notes = *input.Notes
	}
	m.UpdatedAt = time.Now().UTC()

	if _, err := u.commitWithCompletionCheck(ctx, b, m, interfaces.TxPutMilestone{Milestone: m}); err != nil {
		return entities.Milestone{}, err
	}
	log.Printf("[milestone][usecase] updated budget_id=%s milestone_id=%s", b.ID, m.ID)

	recordEvent(ctx, u.events, entities.MilestoneUpdated{
		JobID:       b.JobID,
		BudgetID:    b.ID,
		MilestoneID: m.ID,
		UpdatedBy:   updatedBy,
	})
	return m, nil
}

// UpdateStatus applies a status transition. A transition is accepted iff
// the new status does not regress the chain; same-state is a no-op that
// still persists. Entering COMPLETED stamps completed_at/completed_by and
// may complete the budget in the same transaction.
func (u *MilestoneUseCase) UpdateStatus(ctx context.Context, milestoneID string, newStatus entities.MilestoneStatus, updatedBy, reason string) (entities.Milestone, error) {
	m, b, err := u.load(ctx, milestoneID)
	if err != nil {
		return entities.Milestone{}, err
	}

	newRank := newStatus.Rank()
	if newRank < 0 || newRank < m.Status.Rank() {
		return entities.Milestone{}, ErrInvalidTransition
	}

	now := time.Now().UTC()
	completing := newStatus == entities.MilestoneStatusCompleted && m.Status != entities.MilestoneStatusCompleted
	m.Status = newStatus
	m.UpdatedAt = now
	if completing {
		m.CompletedAt = &now
		m.CompletedBy = updatedBy
	}

	budgetCompleted, err := u.commitWithCompletionCheck(ctx, b, m, interfaces.TxPutMilestone{Milestone: m})
	if err != nil {
		return entities.Milestone{}, err
	}
	log.Printf("[milestone][usecase] status updated budget_id=%s milestone_id=%s status=%s budget_completed=%t", b.ID, m.ID, m.Status, budgetCompleted)

	if completing {
		recordEvent(ctx, u.events, entities.MilestoneCompleted{
			JobID:           b.JobID,
			BudgetID:        b.ID,
			MilestoneID:     m.ID,
			Name:            m.Name,
			Reason:          reason,
			BudgetCompleted: budgetCompleted,
			CompletedBy:     updatedBy,
		})
		dispatchNotification(ctx, u.notifier, u.events, NotificationIntent{
			JobID:      b.JobID,
			ActorID:    updatedBy,
			EmailTo:    b.CreatedBy,
			Subject:    "Milestone completed",
			Template:   "milestone_completed",
			PushUserID: b.CreatedBy,
			PushTitle:  "Milestone completed",
			PushBody:   m.Name,
			Data: map[string]string{
				"job_id":       b.JobID,
				"milestone_id": m.ID,
				"milestone":    m.Name,
			},
		})
	}
	return m, nil
}

// Delete removes a milestone. COMPLETED milestones are frozen and cannot
// be deleted. The removal and the budget completion re-check over the
// remaining set commit together: deleting the last non-completed milestone
// can itself complete the budget.
func (u *MilestoneUseCase) Delete(ctx context.Context, milestoneID string, deletedBy string) error {
	m, b, err := u.load(ctx, milestoneID)
	if err != nil {
		return err
	}
	if m.Status == entities.MilestoneStatusCompleted {
		return ErrCannotDeleteCompleted
	}

	if _, err := u.commitWithCompletionCheck(ctx, b, m, interfaces.TxDeleteMilestone{MilestoneID: m.ID}); err != nil {
		return err
	}
	log.Printf("[milestone][usecase] deleted budget_id=%s milestone_id=%s deleted_by=%s", b.ID, m.ID, deletedBy)

	recordEvent(ctx, u.events, entities.MilestoneDeleted{
		JobID:       b.JobID,
		BudgetID:    b.ID,
		MilestoneID: m.ID,
		DeletedBy:   deletedBy,
	})
	return nil
}

func (u *MilestoneUseCase) load(ctx context.Context, milestoneID string) (entities.Milestone, entities.Budget, error) {
	milestoneID = strings.TrimSpace(milestoneID)
	if milestoneID == "" {
		return entities.Milestone{}, entities.Budget{}, ErrInvalidMilestoneID
	}

	m, err := u.repo.GetByID(ctx, milestoneID)
	if err != nil {
		return entities.Milestone{}, entities.Budget{}, err
	}
	if m.ID == "" {
		return entities.Milestone{}, entities.Budget{}, ErrMilestoneNotFound
	}

	b, err := u.budgetRepo.GetByID(ctx, m.BudgetID)
	if err != nil {
		return entities.Milestone{}, entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Milestone{}, entities.Budget{}, ErrBudgetNotFound
	}
	return m, b, nil
}

// commitWithCompletionCheck commits the milestone write together with the
// budget completion write, if the mutated milestone set warrants one. The
// mutation is applied to the freshly-loaded set in memory so the check
// observes the state being committed.
func (u *MilestoneUseCase) commitWithCompletionCheck(ctx context.Context, b entities.Budget, m entities.Milestone, op interfaces.TxOp) (bool, error) {
	milestones, err := u.repo.ListByBudgetID(ctx, b.ID)
	if err != nil {
		return false, err
	}

	projected := milestones[:0:0]
	for _, existing := range milestones {
		if existing.ID == m.ID {
			continue
		}
		projected = append(projected, existing)
	}
	if _, isDelete := op.(interfaces.TxDeleteMilestone); !isDelete {
		projected = append(projected, m)
	}

	ops := []interfaces.TxOp{op}
	budgetOp, _ := budgetCompletionOp(b, projected, time.Now().UTC())
	if budgetOp != nil {
		ops = append(ops, budgetOp)
	}
	if err := u.tx.Commit(ctx, ops...); err != nil {
		return false, err
	}
	return budgetOp != nil, nil
}
