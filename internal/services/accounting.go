package services

import (
	"context"
	"fmt"

	"finance/internal/core"
	"finance/internal/ports"
)

// Accounting derives monthly figures from the stores without modifying them.
type Accounting struct {
	totals  ports.MonthlyAggregator
	budgets ports.BudgetStore
}

func NewAccounting(totals ports.MonthlyAggregator, budgets ports.BudgetStore) *Accounting {
	return &Accounting{totals: totals, budgets: budgets}
}

// MonthlyTotal sums the transactions of kind whose timestamp falls in month.
func (a *Accounting) MonthlyTotal(ctx context.Context, month core.Month, kind core.Kind) (core.Money, error) {
	if !kind.Valid() {
		return core.Money{}, core.ErrInvalidKind
	}
	total, err := a.totals.SumByMonth(ctx, month, kind)
	if err != nil {
		return core.Money{}, fmt.Errorf("monthly %s total for %s: %w", kind, month, err)
	}
	return total, nil
}

// MonthlyBreakdown groups every transaction by (month, kind).
func (a *Accounting) MonthlyBreakdown(ctx context.Context) (core.Breakdown, error) {
	b, err := a.totals.TotalsByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly breakdown: %w", err)
	}
	return b, nil
}

// BudgetStatus compares month's expenses with its budget. It fails with
// core.ErrNoBudget when no budget was declared, whatever the transactions.
func (a *Accounting) BudgetStatus(ctx context.Context, month core.Month) (core.BudgetStatus, error) {
	budget, err := a.budgets.GetBudget(ctx, month)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("budget status: %w", err)
	}
	spent, err := a.MonthlyTotal(ctx, month, core.Expense)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("budget status: %w", err)
	}
	return CompareBudget(month, budget, spent), nil
}

// CompareBudget builds the status for month. Spending exactly the budget
// is within budget with nothing remaining.
func CompareBudget(month core.Month, budget, spent core.Money) core.BudgetStatus {
	status := core.BudgetStatus{
		Month:        month,
		Budget:       budget,
		TotalExpense: spent,
	}
	if spent.Cents > budget.Cents {
		status.Exceeded = true
		status.Overage = spent.Sub(budget)
	} else {
		status.Remaining = budget.Sub(spent)
	}
	return status
}
