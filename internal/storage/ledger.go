package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance/internal/core"
	applog "finance/internal/log"
)

// LedgerRepository stores transactions and budgets in the finance database.
type LedgerRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewLedgerRepository(dbPath string, opts ...Option) (*LedgerRepository, error) {
	o := buildOptions(opts)
	db, err := openDatabase(dbPath, FinanceSchema)
	if err != nil {
		return nil, err
	}
	return &LedgerRepository{db: db, now: o.now}, nil
}

func (r *LedgerRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddTransaction implements ports.TransactionStore
func (r *LedgerRepository) AddTransaction(ctx context.Context, kind core.Kind, amount core.Money, notes *string) (int64, error) {
	ts := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions(type, amount_cents, notes, timestamp, month) VALUES(?, ?, ?, ?, ?)`,
		kind.String(), amount.Cents, nullString(notes), ts.Unix(), int64(core.MonthOf(ts)))
	if err != nil {
		return 0, storageError(ctx, "insert transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError(ctx, "read transaction id", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldID, id,
		applog.FieldKind, kind.String(),
		applog.FieldAmountCents, amount.Cents,
		applog.FieldMonth, core.MonthOf(ts).String())

	return id, nil
}

// UpdateTransaction implements ports.TransactionStore
func (r *LedgerRepository) UpdateTransaction(ctx context.Context, id int64, amount core.Money, notes *string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET amount_cents = ?, notes = ? WHERE id = ?`,
		amount.Cents, nullString(notes), id)
	if err != nil {
		return false, storageError(ctx, "update transaction", err)
	}
	found, err := affected(res)
	if err != nil {
		return false, storageError(ctx, "update transaction", err)
	}

	slog.InfoContext(ctx, "Transaction update",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldID, id,
		applog.FieldAmountCents, amount.Cents,
		applog.FieldFound, found)

	return found, nil
}

// DeleteTransaction implements ports.TransactionStore
func (r *LedgerRepository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, storageError(ctx, "delete transaction", err)
	}
	found, err := affected(res)
	if err != nil {
		return false, storageError(ctx, "delete transaction", err)
	}

	slog.InfoContext(ctx, "Transaction delete",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpDelete,
		applog.FieldID, id,
		applog.FieldFound, found)

	return found, nil
}

// ListTransactions implements ports.TransactionStore
func (r *LedgerRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, amount_cents, notes, timestamp
		FROM transactions
		ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, storageError(ctx, "query transactions", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t     core.Transaction
			kind  string
			notes sql.NullString
			ts    int64
		)
		if err := rows.Scan(&t.ID, &kind, &t.Amount.Cents, &notes, &ts); err != nil {
			return nil, storageError(ctx, "scan transaction", err)
		}
		if t.Kind, err = core.ParseKind(kind); err != nil {
			return nil, storageError(ctx, "scan transaction", err)
		}
		if notes.Valid {
			t.Notes = &notes.String
		}
		t.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(ctx, "iterate transactions", err)
	}
	return out, nil
}

// SumByMonth implements ports.MonthlyAggregator
func (r *LedgerRepository) SumByMonth(ctx context.Context, month core.Month, kind core.Kind) (core.Money, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE month = ? AND type = ?`,
		int64(month), kind.String()).Scan(&total)
	if err != nil {
		return core.Money{}, storageError(ctx, "sum transactions", err)
	}
	return core.Money{Cents: total}, nil
}

// TotalsByMonth implements ports.MonthlyAggregator
func (r *LedgerRepository) TotalsByMonth(ctx context.Context) (core.Breakdown, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT month, type, SUM(amount_cents)
		FROM transactions
		GROUP BY month, type
		ORDER BY month`)
	if err != nil {
		return nil, storageError(ctx, "query monthly totals", err)
	}
	defer rows.Close()

	out := core.Breakdown{}
	for rows.Next() {
		var (
			month int64
			kind  string
			total int64
		)
		if err := rows.Scan(&month, &kind, &total); err != nil {
			return nil, storageError(ctx, "scan monthly total", err)
		}
		k, err := core.ParseKind(kind)
		if err != nil {
			return nil, storageError(ctx, "scan monthly total", err)
		}
		out[core.MonthKind{Month: core.Month(month), Kind: k}] = core.Money{Cents: total}
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(ctx, "iterate monthly totals", err)
	}
	return out, nil
}

// SetBudget implements ports.BudgetStore
func (r *LedgerRepository) SetBudget(ctx context.Context, month core.Month, amount core.Money) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budget(month, amount_cents)
		VALUES(?, ?)
		ON CONFLICT(month) DO UPDATE SET amount_cents = excluded.amount_cents`,
		int64(month), amount.Cents)
	if err != nil {
		return storageError(ctx, "upsert budget", err)
	}

	slog.InfoContext(ctx, "Budget saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpUpsert,
		applog.FieldMonth, month.String(),
		applog.FieldAmountCents, amount.Cents)

	return nil
}

// GetBudget implements ports.BudgetStore
func (r *LedgerRepository) GetBudget(ctx context.Context, month core.Month) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT amount_cents FROM budget WHERE month = ?`, int64(month)).Scan(&cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Money{}, fmt.Errorf("%s: %w", month, core.ErrNoBudget)
	}
	if err != nil {
		return core.Money{}, storageError(ctx, "query budget", err)
	}
	return core.Money{Cents: cents}, nil
}

// ListBudgets implements ports.BudgetStore
func (r *LedgerRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT month, amount_cents FROM budget ORDER BY month`)
	if err != nil {
		return nil, storageError(ctx, "query budgets", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var month, cents int64
		if err := rows.Scan(&month, &cents); err != nil {
			return nil, storageError(ctx, "scan budget", err)
		}
		out = append(out, core.Budget{Month: core.Month(month), Amount: core.Money{Cents: cents}})
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(ctx, "iterate budgets", err)
	}
	return out, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
