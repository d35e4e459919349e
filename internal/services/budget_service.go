package services

import (
	"context"
	"fmt"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

type BudgetService struct {
	store ports.BudgetStore
	log   *applog.Logger
}

func NewBudgetService(store ports.BudgetStore, logger *applog.Logger) *BudgetService {
	return &BudgetService{
		store: store,
		log:   applog.For(logger, applog.ComponentBudget),
	}
}

// Set declares the budget for month, replacing any earlier one.
func (s *BudgetService) Set(ctx context.Context, month core.Month, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return fmt.Errorf("set budget for %s: %w", month, err)
	}
	if err := s.store.SetBudget(ctx, month, amount); err != nil {
		return fmt.Errorf("set budget for %s: %w", month, err)
	}
	s.log.Operation(ctx, applog.OpUpsert, nil,
		applog.FieldMonth, month.String(),
		applog.FieldAmountCents, amount.Cents)
	return nil
}

// Get returns the budget for month or core.ErrNoBudget.
func (s *BudgetService) Get(ctx context.Context, month core.Month) (core.Money, error) {
	return s.store.GetBudget(ctx, month)
}

func (s *BudgetService) List(ctx context.Context) ([]core.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}
