// Package app holds the menu actions of each program under cmd/. Every tool
// reads through a console.Prompter and delegates to the services package.
package app

import (
	"context"
	"errors"
	"time"

	"finance/internal/console"
	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/services"
)

// BudgetTool declares monthly budgets and compares them with expenses.
type BudgetTool struct {
	p          *console.Prompter
	budgets    *services.BudgetService
	accounting *services.Accounting
	now        func() time.Time
}

func NewBudgetTool(p *console.Prompter, budgets *services.BudgetService, accounting *services.Accounting, now func() time.Time) *BudgetTool {
	if now == nil {
		now = time.Now
	}
	return &BudgetTool{p: p, budgets: budgets, accounting: accounting, now: now}
}

func (t *BudgetTool) Menu(logger *applog.Logger) *console.Menu {
	m := console.NewMenu(t.p, logger, "Budgeting Tool",
		console.Option{Label: "Set Monthly Budget", Run: t.SetBudget},
		console.Option{Label: "View Budget Summary", Run: t.ViewSummary},
		console.Option{Label: "List Budgets", Run: t.ListBudgets},
		console.Option{Label: "Exit"},
	)
	m.Loop = true
	m.Goodbye = "Exiting... Goodbye!"
	return m
}

func (t *BudgetTool) SetBudget(ctx context.Context) error {
	month, err := t.p.Month(ctx, "Enter the month (e.g., January or 2025-01): ", t.now())
	if err != nil {
		return err
	}
	amount, err := t.p.Money(ctx, "Enter your budget amount: ")
	if err != nil {
		return err
	}
	if err := t.budgets.Set(ctx, month, amount); err != nil {
		return err
	}
	t.p.Printf("Budget set successfully for %s!\n", month)
	return nil
}

func (t *BudgetTool) ViewSummary(ctx context.Context) error {
	month, err := t.p.Month(ctx, "Enter the month to view budget summary: ", t.now())
	if err != nil {
		return err
	}
	status, err := t.accounting.BudgetStatus(ctx, month)
	if errors.Is(err, core.ErrNoBudget) {
		t.p.Printf("No budget set for %s.\n", month)
		return nil
	}
	if err != nil {
		return err
	}

	t.p.Printf("\nBudget Summary for %s:\n", month)
	t.p.Printf("Budget Amount: %s\n", status.Budget)
	t.p.Printf("Total Expenses: %s\n", status.TotalExpense)
	if status.Exceeded {
		t.p.Printf("Alert: You have exceeded your budget by %s!\n", status.Overage)
	} else {
		t.p.Printf("You are within your budget. Remaining amount: %s\n", status.Remaining)
	}
	return nil
}

func (t *BudgetTool) ListBudgets(ctx context.Context) error {
	budgets, err := t.budgets.List(ctx)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		t.p.Println("No budgets set.")
		return nil
	}
	t.p.Printf("\n%-10s %-10s\n", "Month", "Budget")
	for _, b := range budgets {
		t.p.Printf("%-10s %-10s\n", b.Month, b.Amount)
	}
	return nil
}
