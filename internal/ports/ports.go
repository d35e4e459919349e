package ports

import (
	"context"

	"finance/internal/core"
)

// Ports implemented by the SQLite and in-memory stores.
type (
	// TransactionStore persists income and expense records.
	TransactionStore interface {
		// AddTransaction stores a new transaction stamped with the store clock.
		AddTransaction(ctx context.Context, kind core.Kind, amount core.Money, notes *string) (id int64, err error)
		// UpdateTransaction replaces amount and notes; kind and timestamp never change.
		UpdateTransaction(ctx context.Context, id int64, amount core.Money, notes *string) (found bool, err error)
		DeleteTransaction(ctx context.Context, id int64) (found bool, err error)
		// ListTransactions returns every transaction, newest first.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// MonthlyAggregator sums transactions by canonical month.
	MonthlyAggregator interface {
		SumByMonth(ctx context.Context, month core.Month, kind core.Kind) (core.Money, error)
		TotalsByMonth(ctx context.Context) (core.Breakdown, error)
	}

	BudgetStore interface {
		// SetBudget inserts or overwrites the budget for month.
		SetBudget(ctx context.Context, month core.Month, amount core.Money) error
		// GetBudget returns core.ErrNoBudget when month has no budget.
		GetBudget(ctx context.Context, month core.Month) (core.Money, error)
		ListBudgets(ctx context.Context) ([]core.Budget, error)
	}

	UserStore interface {
		// CreateUser returns core.ErrAlreadyExists for a taken username.
		CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
		// GetUserByUsername returns core.ErrNotFound for unknown usernames.
		GetUserByUsername(ctx context.Context, username string) (core.User, error)
	}

	// Ledger is everything the finance database offers.
	Ledger interface {
		TransactionStore
		MonthlyAggregator
		BudgetStore
	}
)
