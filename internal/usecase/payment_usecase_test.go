package usecase

import (
	"context"
	"errors"
	"testing"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"
	mock_interfaces "freelancehub_billing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type paymentTestDeps struct {
	repo          *mock_interfaces.MockIPaymentRepository
	milestoneRepo *mock_interfaces.MockIMilestoneRepository
	budgetRepo    *mock_interfaces.MockIBudgetRepository
	events        *mock_interfaces.MockIEventRecorder
	notifier      *mock_interfaces.MockINotificationDispatcher
	uc            *PaymentUseCase
}

func newPaymentTestDeps(ctrl *gomock.Controller) paymentTestDeps {
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	milestoneRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
	budgetRepo := mock_interfaces.NewMockIBudgetRepository(ctrl)
	events := mock_interfaces.NewMockIEventRecorder(ctrl)
	notifier := mock_interfaces.NewMockINotificationDispatcher(ctrl)
	return paymentTestDeps{
		repo:          repo,
		milestoneRepo: milestoneRepo,
		budgetRepo:    budgetRepo,
		events:        events,
		notifier:      notifier,
		uc:            NewPaymentUseCase(repo, milestoneRepo, budgetRepo, events, notifier),
	}
}

func (d paymentTestDeps) expectDispatch() {
	d.notifier.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true})
	d.notifier.EXPECT().SendPush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.DispatchResult{Success: true})
}

func TestPaymentUseCase_ProcessForMilestone(t *testing.T) {
	t.Run("invalid milestone id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil)
		_, err := uc.ProcessForMilestone(context.Background(), " ", PaymentInput{Amount: decimal.NewFromInt(100)}, "client-1")
		if !errors.Is(err, ErrInvalidMilestoneID) {
			t.Fatalf("expected ErrInvalidMilestoneID, got %v", err)
		}
	})

	t.Run("milestone not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.milestoneRepo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(entities.Milestone{}, nil)

		_, err := d.uc.ProcessForMilestone(context.Background(), "ms-1", PaymentInput{Amount: decimal.NewFromInt(100)}, "client-1")
		if !errors.Is(err, ErrMilestoneNotFound) {
			t.Fatalf("expected ErrMilestoneNotFound, got %v", err)
		}
	})

	t.Run("incomplete milestone rejected regardless of amount", func(t *testing.T) {
		for _, status := range []entities.MilestoneStatus{entities.MilestoneStatusPending, entities.MilestoneStatusInProgress} {
			t.Run(string(status), func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				d := newPaymentTestDeps(ctrl)

				d.milestoneRepo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(
					entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Status: status}, nil,
				)

				_, err := d.uc.ProcessForMilestone(context.Background(), "ms-1", PaymentInput{Amount: decimal.Zero}, "client-1")
				if !errors.Is(err, ErrMilestoneNotCompleted) {
					t.Fatalf("expected ErrMilestoneNotCompleted, got %v", err)
				}
			})
		}
	})

	t.Run("non-positive amount rejected before any write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.milestoneRepo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(
			entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Status: entities.MilestoneStatusCompleted}, nil,
		)

		_, err := d.uc.ProcessForMilestone(context.Background(), "ms-1", PaymentInput{Amount: decimal.Zero}, "client-1")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("success creates a pending milestone payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.milestoneRepo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(
			entities.Milestone{ID: "ms-1", BudgetID: "budget-1", Status: entities.MilestoneStatusCompleted}, nil,
		)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.ID == "" || p.BudgetID != "budget-1" || p.MilestoneID != "ms-1" {
					t.Fatalf("unexpected payment: %+v", p)
				}
				if p.PaymentType != entities.PaymentTypeMilestone || p.Status != entities.PaymentStatusPending {
					t.Fatalf("unexpected type/status: %+v", p)
				}
				if p.Currency != "USD" {
					t.Fatalf("expected budget currency fallback, got %s", p.Currency)
				}
				return p, nil
			},
		)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		d.expectDispatch()

		p, err := d.uc.ProcessForMilestone(context.Background(), "ms-1", PaymentInput{Amount: decimal.NewFromInt(300)}, "client-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID == "" {
			t.Fatalf("expected generated id")
		}
	})
}

func TestPaymentUseCase_ProcessForBudget(t *testing.T) {
	t.Run("invalid job id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil)
		_, err := uc.ProcessForBudget(context.Background(), "", PaymentInput{Amount: decimal.NewFromInt(100)}, "client-1")
		if !errors.Is(err, ErrInvalidJobID) {
			t.Fatalf("expected ErrInvalidJobID, got %v", err)
		}
	})

	t.Run("budget not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.budgetRepo.EXPECT().GetByJobID(gomock.Any(), "job-1").Return(entities.Budget{}, nil)

		_, err := d.uc.ProcessForBudget(context.Background(), "job-1", PaymentInput{Amount: decimal.NewFromInt(100)}, "client-1")
		if !errors.Is(err, ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})

	t.Run("success creates a lump sum payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.budgetRepo.EXPECT().GetByJobID(gomock.Any(), "job-1").Return(activeBudget(), nil)
		d.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.PaymentType != entities.PaymentTypeLumpSum || p.MilestoneID != "" {
					t.Fatalf("expected milestone-free lump sum, got %+v", p)
				}
				if p.Currency != "EUR" {
					t.Fatalf("expected explicit currency to win, got %s", p.Currency)
				}
				return p, nil
			},
		)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		d.expectDispatch()

		if _, err := d.uc.ProcessForBudget(context.Background(), "job-1", PaymentInput{Amount: decimal.NewFromInt(500), Currency: " eur "}, "client-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_UpdateStatus(t *testing.T) {
	t.Run("payment not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{}, nil)

		_, err := d.uc.UpdateStatus(context.Background(), "pay-1", entities.PaymentStatusCompleted, "admin-1", "")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("completing stamps processed_at and clears failure reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(
			entities.Payment{ID: "pay-1", BudgetID: "budget-1", Status: entities.PaymentStatusFailed, FailureReason: "card declined"}, nil,
		)
		d.repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Status != entities.PaymentStatusCompleted {
					t.Fatalf("expected COMPLETED, got %s", p.Status)
				}
				if p.ProcessedAt == nil || p.ProcessedBy != "admin-1" {
					t.Fatalf("expected processing stamp, got %+v", p)
				}
				if p.FailureReason != "" {
					t.Fatalf("expected failure reason cleared")
				}
				return p, nil
			},
		)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.BudgetEvent) error {
				ch, ok := ev.(entities.PaymentStatusChanged)
				if !ok {
					t.Fatalf("expected PaymentStatusChanged, got %T", ev)
				}
				if ch.OldStatus != entities.PaymentStatusFailed || ch.NewStatus != entities.PaymentStatusCompleted {
					t.Fatalf("unexpected transition in event: %+v", ch)
				}
				if ch.JobID != "job-1" {
					t.Fatalf("expected job id from budget, got %q", ch.JobID)
				}
				return nil
			},
		)

		if _, err := d.uc.UpdateStatus(context.Background(), "pay-1", entities.PaymentStatusCompleted, "admin-1", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("failing records the reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(
			entities.Payment{ID: "pay-1", BudgetID: "budget-1", Status: entities.PaymentStatusPending}, nil,
		)
		d.repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Status != entities.PaymentStatusFailed || p.FailureReason != "insufficient funds" {
					t.Fatalf("unexpected payment: %+v", p)
				}
				return p, nil
			},
		)
		d.budgetRepo.EXPECT().GetByID(gomock.Any(), "budget-1").Return(activeBudget(), nil)
		d.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := d.uc.UpdateStatus(context.Background(), "pay-1", entities.PaymentStatusFailed, "admin-1", "insufficient funds"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("update hitting a vanished payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		d := newPaymentTestDeps(ctrl)

		d.repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(
			entities.Payment{ID: "pay-1", BudgetID: "budget-1", Status: entities.PaymentStatusPending}, nil,
		)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Payment{}, nil)

		_, err := d.uc.UpdateStatus(context.Background(), "pay-1", entities.PaymentStatusCompleted, "admin-1", "")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}
