package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrBudgetAlreadyExists = errors.New("budget already exists for job")
	ErrInvalidJobID        = errors.New("invalid job id")
	ErrInvalidBudgetType   = errors.New("invalid budget type")
)

// BudgetCreateInput carries the caller-supplied fields for a new budget.

type BudgetCreateInput struct {
	Type           entities.BudgetType
	Amount         decimal.Decimal
	Currency       string
	EstimatedHours *float64
	Notes          string
}

// MilestoneInput is one element of a milestone replacement set supplied to
// Update. Ordering and percentages are the caller's responsibility; the
// aggregate preserves the supplied order.

type MilestoneInput struct {
	Name               string
	Description        string
	Amount             decimal.Decimal
	Percentage         *float64
	DueDate            *time.Time
	Deliverables       []string
	AcceptanceCriteria string
	Notes              string
}

// BudgetPatch is a partial budget update. Nil fields are left untouched.
// A non-nil Milestones replaces the whole milestone set in the same
// transaction as the budget write.

type BudgetPatch struct {
	Type           *entities.BudgetType
	Amount         *decimal.Decimal
	EstimatedHours *float64
	Notes          *string
	Milestones     *[]MilestoneInput
}

// BudgetDetail is a budget with its milestones (ascending by creation) and
// payments (descending by creation).

type BudgetDetail struct {
	Budget     entities.Budget
	Milestones []entities.Milestone
	Payments   []entities.Payment
}

// BudgetSummary is the denormalized read model combining budget, milestone
// and payment state. Pure projection, no mutation.

type BudgetSummary struct {
	JobID               string
	BudgetID            string
	Type                entities.BudgetType
	Status              entities.BudgetStatus
	Amount              decimal.Decimal
	Currency            string
	MilestoneCount      int
	CompletedMilestones int
	TotalPaid           decimal.Decimal
	PercentPaid         decimal.Decimal
	NextDueMilestone    *entities.Milestone
}

// IBudgetUseCase owns the budget aggregate: it mediates every mutation of
// a budget and recomputes completion from milestone state.

type IBudgetUseCase interface {
	Create(ctx context.Context, jobID string, input BudgetCreateInput, createdBy string) (entities.Budget, error)
	GetByJob(ctx context.Context, jobID string) (BudgetDetail, error)
	Update(ctx context.Context, jobID string, patch BudgetPatch, updatedBy string) (BudgetDetail, error)
	Delete(ctx context.Context, jobID string, deletedBy string) error
	CheckCompletion(ctx context.Context, budgetID string) (bool, error)
	Summary(ctx context.Context, jobID string) (BudgetSummary, error)
	ListForUser(ctx context.Context, userID string) ([]BudgetSummary, error)
	ListAll(ctx context.Context) ([]BudgetSummary, error)
}

type BudgetUseCase struct {
	repo          interfaces.IBudgetRepository
	milestoneRepo interfaces.IMilestoneRepository
	paymentRepo   interfaces.IPaymentRepository
	currencies    ICurrencyUseCase
	tx            interfaces.ITransactionalStore
	events        interfaces.IEventRecorder
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(
	repo interfaces.IBudgetRepository,
	milestoneRepo interfaces.IMilestoneRepository,
	paymentRepo interfaces.IPaymentRepository,
	currencies ICurrencyUseCase,
	tx interfaces.ITransactionalStore,
	events interfaces.IEventRecorder,
) *BudgetUseCase {
	return &BudgetUseCase{
		repo:          repo,
		milestoneRepo: milestoneRepo,
		paymentRepo:   paymentRepo,
		currencies:    currencies,
		tx:            tx,
		events:        events,
	}
}

// Create inserts the budget for a job. The job service calls this when the
// job itself is created; exactly one budget may exist per job.
func (u *BudgetUseCase) Create(ctx context.Context, jobID string, input BudgetCreateInput, createdBy string) (entities.Budget, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Budget{}, ErrInvalidJobID
	}
	if input.Type != entities.BudgetTypeFixed && input.Type != entities.BudgetTypeHourly {
		return entities.Budget{}, ErrInvalidBudgetType
	}

	currency, ok, err := u.currencies.Validate(ctx, input.Currency)
	if err != nil {
		return entities.Budget{}, err
	}
	if !ok {
		return entities.Budget{}, ErrInvalidCurrency
	}
	if err := checkAmountForCurrency(input.Amount, currency); err != nil {
		return entities.Budget{}, err
	}

	if existing, err := u.repo.GetByJobID(ctx, jobID); err != nil {
		return entities.Budget{}, err
	} else if existing.ID != "" {
		return entities.Budget{}, ErrBudgetAlreadyExists
	}

	now := time.Now().UTC()
	b := entities.Budget{
		ID:             uuid.NewString(),
		JobID:          jobID,
		Type:           input.Type,
		Amount:         input.Amount,
		Currency:       currency.Code,
		EstimatedHours: input.EstimatedHours,
		Status:         entities.BudgetStatusActive,
		Notes:          input.Notes,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := u.repo.Create(ctx, b)
	if err != nil {
		return entities.Budget{}, err
	}
	log.Printf("[budget][usecase] created job_id=%s budget_id=%s amount=%s %s", jobID, created.ID, created.Amount.String(), created.Currency)

	u.record(ctx, entities.BudgetCreated{
		JobID:     jobID,
		BudgetID:  created.ID,
		Type:      created.Type,
		Amount:    created.Amount,
		Currency:  created.Currency,
		CreatedBy: createdBy,
	})
	return created, nil
}

func (u *BudgetUseCase) GetByJob(ctx context.Context, jobID string) (BudgetDetail, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return BudgetDetail{}, ErrInvalidJobID
	}

	b, err := u.repo.GetByJobID(ctx, jobID)
	if err != nil {
		return BudgetDetail{}, err
	}
	if b.ID == "" {
		return BudgetDetail{}, ErrBudgetNotFound
	}
	return u.loadDetail(ctx, b)
}

// Update applies a partial patch. When the patch replaces the milestone
// set, the deletes, the inserts and the budget write all commit in a
// single transaction.
func (u *BudgetUseCase) Update(ctx context.Context, jobID string, patch BudgetPatch, updatedBy string) (BudgetDetail, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return BudgetDetail{}, ErrInvalidJobID
	}

	b, err := u.repo.GetByJobID(ctx, jobID)
	if err != nil {
		return BudgetDetail{}, err
	}
	if b.ID == "" {
		return BudgetDetail{}, ErrBudgetNotFound
	}

	now := time.Now().UTC()
	var changed []string

	if patch.Type != nil {
		if *patch.Type != entities.BudgetTypeFixed && *patch.Type != entities.BudgetTypeHourly {
			return BudgetDetail{}, ErrInvalidBudgetType
		}
		b.Type = *patch.Type
		changed = append(changed, "type")
	}
	if patch.Amount != nil {
		currency, ok, err := u.currencies.Validate(ctx, b.Currency)
		if err != nil {
			return BudgetDetail{}, err
		}
		if !ok {
			return BudgetDetail{}, ErrInvalidCurrency
		}
		if err := checkAmountForCurrency(*patch.Amount, currency); err != nil {
			return BudgetDetail{}, err
		}
		b.Amount = *patch.Amount
		changed = append(changed, "amount")
	}
	if patch.EstimatedHours != nil {
		b.EstimatedHours = patch.EstimatedHours
		changed = append(changed, "estimated_hours")
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
		changed = append(changed, "notes")
	}

	ops := []interfaces.TxOp{}
	var newMilestones []entities.Milestone

	if patch.Milestones != nil {
		existing, err := u.milestoneRepo.ListByBudgetID(ctx, b.ID)
		if err != nil {
			return BudgetDetail{}, err
		}
		for _, m := range existing {
			ops = append(ops, interfaces.TxDeleteMilestone{MilestoneID: m.ID})
		}
		for i, in := range *patch.Milestones {
			// Stagger created_at so created-at ordering reproduces the
			// caller-supplied milestone order.
			createdAt := now.Add(time.Duration(i) * time.Microsecond)
			newMilestones = append(newMilestones, entities.Milestone{
				ID:                 uuid.NewString(),
				BudgetID:           b.ID,
				Name:               in.Name,
				Description:        in.Description,
				Amount:             in.Amount,
				Percentage:         in.Percentage,
				Status:             entities.MilestoneStatusPending,
				DueDate:            in.DueDate,
				Deliverables:       in.Deliverables,
				AcceptanceCriteria: in.AcceptanceCriteria,
				Notes:              in.Notes,
				CreatedAt:          createdAt,
				UpdatedAt:          createdAt,
			})
		}
		for _, m := range newMilestones {
			ops = append(ops, interfaces.TxPutMilestone{Milestone: m})
		}
		changed = append(changed, "milestones")
	}

	b.UpdatedAt = now
	ops = append(ops, interfaces.TxPutBudget{Budget: b})

	if err := u.tx.Commit(ctx, ops...); err != nil {
		return BudgetDetail{}, err
	}
	log.Printf("[budget][usecase] updated job_id=%s budget_id=%s fields=%v", jobID, b.ID, changed)

	u.record(ctx, entities.BudgetUpdated{
		JobID:         jobID,
		BudgetID:      b.ID,
		ChangedFields: changed,
		UpdatedBy:     updatedBy,
	})

	if patch.Milestones != nil {
		payments, err := u.paymentRepo.ListByBudgetID(ctx, b.ID)
		if err != nil {
			return BudgetDetail{}, err
		}
		sortPaymentsDesc(payments)
		return BudgetDetail{Budget: b, Milestones: newMilestones, Payments: payments}, nil
	}
	return u.loadDetail(ctx, b)
}

func (u *BudgetUseCase) Delete(ctx context.Context, jobID string, deletedBy string) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return ErrInvalidJobID
	}

	b, err := u.repo.GetByJobID(ctx, jobID)
	if err != nil {
		return err
	}
	if b.ID == "" {
		return ErrBudgetNotFound
	}

	// Milestones and payments go with the budget via the store's cascade.
	if err := u.repo.Delete(ctx, b.ID); err != nil {
		return err
	}
	log.Printf("[budget][usecase] deleted job_id=%s budget_id=%s deleted_by=%s", jobID, b.ID, deletedBy)

	u.record(ctx, entities.BudgetDeleted{JobID: jobID, BudgetID: b.ID, DeletedBy: deletedBy})
	return nil
}

// CheckCompletion recomputes the budget status from its milestone set:
// COMPLETED iff the set is non-empty and every milestone is COMPLETED.
// Idempotent, and it never reverts a COMPLETED budget (freeze policy:
// adding a new PENDING milestone later does not reopen the budget).
func (u *BudgetUseCase) CheckCompletion(ctx context.Context, budgetID string) (bool, error) {
	b, err := u.repo.GetByID(ctx, budgetID)
	if err != nil {
		return false, err
	}
	if b.ID == "" {
		return false, ErrBudgetNotFound
	}

	milestones, err := u.milestoneRepo.ListByBudgetID(ctx, b.ID)
	if err != nil {
		return false, err
	}

	op, completed := budgetCompletionOp(b, milestones, time.Now().UTC())
	if op == nil {
		return completed, nil
	}
	if err := u.tx.Commit(ctx, op); err != nil {
		return false, err
	}
	log.Printf("[budget][usecase] completion reached budget_id=%s milestones=%d", b.ID, len(milestones))
	return true, nil
}

func (u *BudgetUseCase) Summary(ctx context.Context, jobID string) (BudgetSummary, error) {
	detail, err := u.GetByJob(ctx, jobID)
	if err != nil {
		return BudgetSummary{}, err
	}
	return summarize(detail.Budget, detail.Milestones, detail.Payments), nil
}

func (u *BudgetUseCase) ListForUser(ctx context.Context, userID string) ([]BudgetSummary, error) {
	budgets, err := u.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.summarizeAll(ctx, budgets)
}

func (u *BudgetUseCase) ListAll(ctx context.Context) ([]BudgetSummary, error) {
	budgets, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.summarizeAll(ctx, budgets)
}

func (u *BudgetUseCase) summarizeAll(ctx context.Context, budgets []entities.Budget) ([]BudgetSummary, error) {
	summaries := make([]BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		milestones, err := u.milestoneRepo.ListByBudgetID(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		payments, err := u.paymentRepo.ListByBudgetID(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summarize(b, milestones, payments))
	}
	return summaries, nil
}

func (u *BudgetUseCase) loadDetail(ctx context.Context, b entities.Budget) (BudgetDetail, error) {
	milestones, err := u.milestoneRepo.ListByBudgetID(ctx, b.ID)
	if err != nil {
		return BudgetDetail{}, err
	}
	payments, err := u.paymentRepo.ListByBudgetID(ctx, b.ID)
	if err != nil {
		return BudgetDetail{}, err
	}

	sort.Slice(milestones, func(i, j int) bool { return milestones[i].CreatedAt.Before(milestones[j].CreatedAt) })
	sortPaymentsDesc(payments)
	return BudgetDetail{Budget: b, Milestones: milestones, Payments: payments}, nil
}

func (u *BudgetUseCase) record(ctx context.Context, ev entities.BudgetEvent) {
	recordEvent(ctx, u.events, ev)
}

func sortPaymentsDesc(payments []entities.Payment) {
	sort.Slice(payments, func(i, j int) bool { return payments[i].CreatedAt.After(payments[j].CreatedAt) })
}

// budgetCompletionOp returns the budget write that flips an ACTIVE budget
// to COMPLETED when every milestone in a non-empty set is COMPLETED. The
// returned bool reports whether the budget is (or becomes) COMPLETED.
func budgetCompletionOp(b entities.Budget, milestones []entities.Milestone, now time.Time) (interfaces.TxOp, bool) {
	if b.Status == entities.BudgetStatusCompleted {
		return nil, true
	}
	if len(milestones) == 0 {
		return nil, false
	}
	for _, m := range milestones {
		if m.Status != entities.MilestoneStatusCompleted {
			return nil, false
		}
	}
	b.Status = entities.BudgetStatusCompleted
	b.UpdatedAt = now
	return interfaces.TxPutBudget{Budget: b}, true
}

// checkAmountForCurrency rejects non-positive amounts and amounts finer
// than the currency's minor unit (e.g. 10.005 USD, 100.5 JPY).
func checkAmountForCurrency(amount decimal.Decimal, currency entities.Currency) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(int32(currency.DecimalPlaces))) {
		return ErrInvalidAmount
	}
	return nil
}

func summarize(b entities.Budget, milestones []entities.Milestone, payments []entities.Payment) BudgetSummary {
	s := BudgetSummary{
		JobID:          b.JobID,
		BudgetID:       b.ID,
		Type:           b.Type,
		Status:         b.Status,
		Amount:         b.Amount,
		Currency:       b.Currency,
		MilestoneCount: len(milestones),
		TotalPaid:      decimal.Zero,
	}

	var nextDue *entities.Milestone
	for i := range milestones {
		m := milestones[i]
		if m.Status == entities.MilestoneStatusCompleted {
			s.CompletedMilestones++
			continue
		}
		if m.DueDate == nil {
			continue
		}
		if nextDue == nil || m.DueDate.Before(*nextDue.DueDate) {
			nextDue = &milestones[i]
		}
	}
	s.NextDueMilestone = nextDue

	for _, p := range payments {
		if p.Status == entities.PaymentStatusCompleted {
			s.TotalPaid = s.TotalPaid.Add(p.Amount)
		}
	}
	if b.Amount.IsPositive() {
		s.PercentPaid = s.TotalPaid.Div(b.Amount).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return s
}
