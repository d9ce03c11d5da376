package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"
	mock_interfaces "freelancehub_billing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type milestoneTestDeps struct {
	repo       *mock_interfaces.MockIMilestoneRepository
	budgetRepo *mock_interfaces.MockIBudgetRepository
	tx         *mock_interfaces.MockITransactionalStore
	events     *mock_interfaces.MockIEventRecorder
	notifier   *mock_interfaces.MockINotificationDispatcher
	uc         *MilestoneUseCase
}

func newMilestoneTestDeps(ctrl *gomock.Controller) milestoneTestDeps {
	repo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
	budgetRepo := mock_interfaces.NewMockIBudgetRepository(ctrl)
	tx := mock_interfaces.NewMockITransactionalStore(ctrl)
	events := mock_interfaces.NewMockIEventRecorder(ctrl)
	notifier := mock_interfaces.NewMockINotificationDispatcher(ctrl)
	return milestoneTestDeps{
		repo:       repo,
		budgetRepo: budgetRepo,
		tx:         tx,
		events:     events,
		notifier:   notifier,
		uc:         NewMilestoneUseCase(repo, budgetRepo, tx, events, notifier),
	}
}

func activeBudget() entities.Budget {
	return entities.Budget{
		ID:        "budget-1",
		JobID:     "job-1",
		Type:      entities.BudgetTypeFixed,
		Amount:    decimal.NewFromInt(1000),
		Currency:  "USD",
		Status:    entities.BudgetStatusActive,
		CreatedBy: "client-1",
	}
}

func TestMilestoneUseCase_Create(t *testing.T) {
	t.Run("empty budget id", func(t *testing.T) {
		uc := NewMilestoneUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Create(context.Background(), "  ", MilestoneInput{}, "client-1")
		if !errors.Is(err, ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})

	t.Run("budget not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(entities.Budget{}, nil)

		_, err := d.uc.Create(context.Background(), "budget-1", MilestoneInput{Name: "Design"}, "client-1")
		if !errors.Is(err, ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})

	t.Run("success starts pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Milestone{})).DoAndReturn(
			func(_ context.Context, m entities.Milestone) (entities.Milestone, error) {
				if m.ID == "" || m.BudgetID != "budget-1" || m.Name != "Design" {
					t.Fatalf("unexpected milestone: %+v", m)
				}
				if m.Status != entities.MilestoneStatusPending {
					t.Fatalf("expected PENDING, got %s", m.Status)
				}
				if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return m, nil
			},
		)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.BudgetEvent) error {
				if ev.Kind() != entities.EventMilestoneCreated {
					t.Fatalf("expected MILESTONE_CREATED, got %s", ev.Kind())
				}
				return nil
			},
		)

		m, err := d.uc.Create(context.Background(), "budget-1", MilestoneInput{Name: "Design", Amount: decimal.NewFromInt(300)}, "client-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ID == "" {
			t.Fatalf("expected generated id")
		}
	})
}

func TestMilestoneUseCase_Update(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewMilestoneUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Update(context.Background(), " ", MilestoneUpdate{}, "client-1")
		if !errors.Is(err, ErrInvalidMilestoneID) {
			t.Fatalf("expected ErrInvalidMilestoneID, got %v", err)
		}
	})

	t.Run("completed milestone is frozen", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(
			entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Status: entities.MilestoneStatusCompleted}, nil,
		)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)

		name := "New name"
		_, err := d.uc.Update(context.Background(), "ms-1", MilestoneUpdate{Name: &name}, "client-1")
		if !errors.Is(err, ErrCannotUpdateCompleted) {
			t.Fatalf("expected ErrCannotUpdateCompleted, got %v", err)
		}
	})

	t.Run("applies only non-nil fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		current := entities.Milestone{
			ID:          "ms-1",
			BudgetID:    "budget-1",
			Name:        "Design",
			Description: "Wireframes",
			Amount:      decimal.NewFromInt(300),
			Status:      entities.MilestoneStatusInProgress,
		}
		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(current, nil)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().ListByBudgetID(gomock.Any(), "budget-1").Return([]entities.Milestone{current}, nil)
		d.tx.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ops ...interfaces.TxOp) error {
				if len(ops) != 1 {
					t.Fatalf("expected only the milestone put, got %d ops", len(ops))
				}
				put, ok := ops[0].(interfaces.TxPutMilestone)
				if !ok {
					t.Fatalf("expected TxPutMilestone, got %T", ops[0])
				}
				if put.Milestone.Name != "Design v2" || put.Milestone.Description != "Wireframes" {
					t.Fatalf("unexpected milestone: %+v", put.Milestone)
				}
				if !put.Milestone.Amount.Equal(decimal.NewFromInt(350)) {
					t.Fatalf("expected amount 350, got %s", put.Milestone.Amount)
				}
				return nil
			},
		)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		name := "Design v2"
		amount := decimal.NewFromInt(350)
		m, err := d.uc.Update(context.Background(), "ms-1", MilestoneUpdate{Name: &name, Amount: &amount}, "client-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Status != entities.MilestoneStatusInProgress {
			t.Fatalf("status must not change via Update, got %s", m.Status)
		}
	})
}

func TestMilestoneUseCase_UpdateStatus(t *testing.T) {
	t.Run("transition matrix", func(t *testing.T) {
		cases := []struct {
			name    string
			from    entities.MilestoneStatus
			to      entities.MilestoneStatus
			allowed bool
		}{
			{name: "pending to in_progress", from: entities.MilestoneStatusPending, to: entities.MilestoneStatusInProgress, allowed: true},
			{name: "pending to completed", from: entities.MilestoneStatusPending, to: entities.MilestoneStatusCompleted, allowed: true},
			{name: "in_progress to completed", from: entities.MilestoneStatusInProgress, to: entities.MilestoneStatusCompleted, allowed: true},
			{name: "same state is a no-op", from: entities.MilestoneStatusInProgress, to: entities.MilestoneStatusInProgress, allowed: true},
			{name: "in_progress back to pending", from: entities.MilestoneStatusInProgress, to: entities.MilestoneStatusPending, allowed: false},
			{name: "completed back to in_progress", from: entities.MilestoneStatusCompleted, to: entities.MilestoneStatusInProgress, allowed: false},
			{name: "unknown status", from: entities.MilestoneStatusPending, to: entities.MilestoneStatus("BOGUS"), allowed: false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				d := newMilestoneTestDeps(ctrl)

				current := entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Name: "Design", Status: tc.from}
				other := entities.Milestone{ID: "ms-2", BudgetID: "budget-1", Status: entities.MilestoneStatusPending}
				d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(current, nil)
				d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)

				if tc.allowed {
					d.repo.EXPECT().ListByBudgetID(gomock.Any(), "budget-1").Return([]entities.Milestone{current, other}, nil)
					d.tx.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil)
					if tc.to == entities.MilestoneStatusCompleted && tc.from != entities.MilestoneStatusCompleted {
						d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)
						d.notifier.EXPECT().SendEmail(gomock.Any(), "client-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true, ID: "n-1"})
						d.notifier.EXPECT().SendPush(gomock.Any(), "client-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true, ID: "n-2"})
					}
				}

				m, err := d.uc.UpdateStatus(context.Background(), "ms-1", tc.to, "freelancer-1", "")
				if tc.allowed {
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					if m.Status != tc.to {
						t.Fatalf("expected %s, got %s", tc.to, m.Status)
					}
					return
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
			})
		}
	})

	t.Run("completing stamps completed_at and completed_by", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		current := entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Name: "Design", Status: entities.MilestoneStatusInProgress}
		other := entities.Milestone{ID: "ms-2", BudgetID: "budget-1", Status: entities.MilestoneStatusPending}
		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(current, nil)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().ListByBudgetID(gomock.Any(), "budget-1").Return([]entities.Milestone{current, other}, nil)
		d.tx.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		d.notifier.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true})
		d.notifier.EXPECT().SendPush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true})

		m, err := d.uc.UpdateStatus(context.Background(), "ms-1", entities.MilestoneStatusCompleted, "freelancer-1", "delivered")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.CompletedAt == nil || m.CompletedBy != "freelancer-1" {
			t.Fatalf("expected completion stamp, got %+v", m)
		}
	})

	t.Run("last completion also completes the budget atomically", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		current := entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Name: "Launch", Status: entities.MilestoneStatusInProgress}
		done := entities.Milestone{ID: "ms-2", BudgetID: "budget-1", Status: entities.MilestoneStatusCompleted}
		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(current, nil)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().ListByBudgetID(gomock.Any(), "budget-1").Return([]entities.Milestone{current, done}, nil)
		d.tx.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ops ...interfaces.TxOp) error {
				if len(ops) != 2 {
					t.Fatalf("expected milestone put + budget put, got %d ops", len(ops))
				}
				put, ok := ops[1].(interfaces.TxPutBudget)
				if !ok {
					t.Fatalf("expected TxPutBudget, got %T", ops[1])
				}
				if put.Budget.Status != entities.BudgetStatusCompleted {
					t.Fatalf("expected COMPLETED budget, got %s", put.Budget.Status)
				}
				return nil
			},
		)
		var completedEvent entities.MilestoneCompleted
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.BudgetEvent) error {
				if mc, ok := ev.(entities.MilestoneCompleted); ok {
					completedEvent = mc
				}
				return nil
			},
		).Times(2)
		d.notifier.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true})
		d.notifier.EXPECT().SendPush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true})

		if _, err := d.uc.UpdateStatus(context.Background(), "ms-1", entities.MilestoneStatusCompleted, "freelancer-1", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !completedEvent.BudgetCompleted {
			t.Fatalf("expected BudgetCompleted=true in event")
		}
	})

	t.Run("notification failure does not fail the mutation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		current := entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Name: "Design", Status: entities.MilestoneStatusInProgress}
		other := entities.Milestone{ID: "ms-2", BudgetID: "budget-1", Status: entities.MilestoneStatusPending}
		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(current, nil)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().ListByBudgetID(gomock.Any(), "budget-1").Return([]entities.Milestone{current, other}, nil)
		d.tx.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil)
		d.notifier.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Err: errors.New("smtp down")})
		d.notifier.EXPECT().SendPush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true})

		var sent entities.NotificationSent
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.BudgetEvent) error {
				if ns, ok := ev.(entities.NotificationSent); ok {
					sent = ns
				}
				return nil
			},
		).Times(2)

		if _, err := d.uc.UpdateStatus(context.Background(), "ms-1", entities.MilestoneStatusCompleted, "freelancer-1", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sent.EmailSent || !sent.PushSent {
			t.Fatalf("unexpected outcome: %+v", sent)
		}
		if len(sent.Errors) != 1 {
			t.Fatalf("expected one delivery error, got %v", sent.Errors)
		}
	})
}

func TestMilestoneUseCase_Delete(t *testing.T) {
	t.Run("milestone not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(entities.Milestone{}, nil)

		err := d.uc.Delete(context.Background(), "ms-1", "client-1")
		if !errors.Is(err, ErrMilestoneNotFound) {
			t.Fatalf("expected ErrMilestoneNotFound, got %v", err)
		}
	})

	t.Run("completed milestone cannot be deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(
			entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Status: entities.MilestoneStatusCompleted}, nil,
		)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)

		err := d.uc.Delete(context.Background(), "ms-1", "client-1")
		if !errors.Is(err, ErrCannotDeleteCompleted) {
			t.Fatalf("expected ErrCannotDeleteCompleted, got %v", err)
		}
	})

	t.Run("deleting the last pending milestone completes the budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		pending := entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Status: entities.MilestoneStatusPending}
		done := entities.Milestone{ID: "ms-2", BudgetID: "budget-1", Status: entities.MilestoneStatusCompleted}
		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(pending, nil)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().ListByBudgetID(gomock.Any(), "budget-1").Return([]entities.Milestone{pending, done}, nil)
		d.tx.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ops ...interfaces.TxOp) error {
				del, ok := ops[0].(interfaces.TxDeleteMilestone)
				if !ok || del.MilestoneID != "ms-1" {
					t.Fatalf("expected delete of ms-1, got %+v", ops[0])
				}
				put, ok := ops[1].(interfaces.TxPutBudget)
				if !ok || put.Budget.Status != entities.BudgetStatusCompleted {
					t.Fatalf("expected budget completion write, got %+v", ops[1])
				}
				return nil
			},
		)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		if err := d.uc.Delete(context.Background(), "ms-1", "client-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("deleting from an all-pending set leaves the budget alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newMilestoneTestDeps(ctrl)

		first := entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Status: entities.MilestoneStatusPending}
		second := entities.Milestone{ID: "ms-2", BudgetID: "budget-1", Status: entities.MilestoneStatusPending}
		d.repo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(first, nil)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().ListByBudgetID(gomock.Any(), "budget-1").Return([]entities.Milestone{first, second}, nil)
		d.tx.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ops ...interfaces.TxOp) error {
				if len(ops) != 1 {
					t.Fatalf("expected only the delete, got %d ops", len(ops))
				}
				return nil
			},
		)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		if err := d.uc.Delete(context.Background(), "ms-1", "client-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMilestoneStatusRank(t *testing.T) {
	if entities.MilestoneStatusPending.Rank() != 0 ||
		entities.MilestoneStatusInProgress.Rank() != 1 ||
		entities.MilestoneStatusCompleted.Rank() != 2 {
		t.Fatalf("unexpected rank chain")
	}
	if entities.MilestoneStatus("BOGUS").Rank() != -1 {
		t.Fatalf("unknown status must rank -1")
	}
}

func TestBudgetCompletionOp(t *testing.T) {
	now := time.Now().UTC()

	t.Run("empty set never completes", func(t *testing.T) {
		op, completed := budgetCompletionOp(activeBudget(), nil, now)
		if op != nil || completed {
			t.Fatalf("expected no-op for empty set")
		}
	})

	t.Run("already completed budget stays frozen", func(t *testing.T) {
		b := activeBudget()
		b.Status = entities.BudgetStatusCompleted
		op, completed := budgetCompletionOp(b, []entities.Milestone{{Status: entities.MilestoneStatusPending}}, now)
		if op != nil {
			t.Fatalf("completed budget must not be rewritten")
		}
		if !completed {
			t.Fatalf("expected completed=true")
		}
	})

	t.Run("all completed flips the budget", func(t *testing.T) {
		op, completed := budgetCompletionOp(activeBudget(), []entities.Milestone{
			{Status: entities.MilestoneStatusCompleted},
			{Status: entities.MilestoneStatusCompleted},
		}, now)
		if op == nil || !completed {
			t.Fatalf("expected completion write")
		}
		put := op.(interfaces.TxPutBudget)
		if put.Budget.Status != entities.BudgetStatusCompleted || !put.Budget.UpdatedAt.Equal(now) {
			t.Fatalf("unexpected budget write: %+v", put.Budget)
		}
	})
}
