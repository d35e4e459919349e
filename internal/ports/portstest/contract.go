// Package portstest checks store implementations against the behaviour the
// services rely on.
package portstest

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"finance/internal/core"
	"finance/internal/ports"
)

// Clock is a settable clock for stamping transactions.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// LedgerFactory returns an empty ledger whose transactions are stamped by now.
type LedgerFactory func(t *testing.T, now func() time.Time) ports.Ledger

// UserFactory returns an empty user store.
type UserFactory func(t *testing.T) ports.UserStore

func notes(s string) *string { return &s }

func mustAdd(t *testing.T, s ports.TransactionStore, kind core.Kind, cents int64, n *string) int64 {
	t.Helper()
	id, err := s.AddTransaction(context.Background(), kind, core.Money{Cents: cents}, n)
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return id
}

func mustList(t *testing.T, s ports.TransactionStore) []core.Transaction {
	t.Helper()
	txs, err := s.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	return txs
}

// RunLedger runs the transaction, aggregate and budget checks.
func RunLedger(t *testing.T, newLedger LedgerFactory) {
	ctx := context.Background()
	jan15 := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	jan31 := time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)
	feb1 := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	jan := core.NewMonth(2025, time.January)
	feb := core.NewMonth(2025, time.February)

	t.Run("add and list newest first", func(t *testing.T) {
		clock := NewClock(jan15)
		s := newLedger(t, clock.Now)

		first := mustAdd(t, s, core.Income, 100000, notes("salary"))
		clock.Set(feb1)
		second := mustAdd(t, s, core.Expense, 2550, nil)
		third := mustAdd(t, s, core.Expense, 0, notes("free sample"))
		if first == second || second == third {
			t.Fatalf("ids must be unique: %d %d %d", first, second, third)
		}

		txs := mustList(t, s)
		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txs))
		}
		if txs[0].ID != third || txs[1].ID != second || txs[2].ID != first {
			t.Fatalf("unexpected order: %+v", txs)
		}
		if txs[2].Kind != core.Income || txs[2].Amount.Cents != 100000 || txs[2].NotesOr("") != "salary" {
			t.Fatalf("unexpected first transaction: %+v", txs[2])
		}
		if txs[1].Notes != nil {
			t.Fatalf("expected absent notes, got %q", *txs[1].Notes)
		}
		if !txs[2].Timestamp.Equal(jan15) || txs[2].Month() != jan {
			t.Fatalf("unexpected timestamp %v", txs[2].Timestamp)
		}
	})

	t.Run("update replaces amount and notes only", func(t *testing.T) {
		clock := NewClock(jan15)
		s := newLedger(t, clock.Now)
		id := mustAdd(t, s, core.Expense, 1000, notes("old"))

		clock.Set(feb1)
		found, err := s.UpdateTransaction(ctx, id, core.Money{Cents: 2000}, nil)
		if err != nil || !found {
			t.Fatalf("update: found=%v err=%v", found, err)
		}

		txs := mustList(t, s)
		got := txs[0]
		if got.Amount.Cents != 2000 || got.Notes != nil {
			t.Fatalf("amount/notes not replaced: %+v", got)
		}
		if got.Kind != core.Expense || !got.Timestamp.Equal(jan15) {
			t.Fatalf("kind or timestamp changed: %+v", got)
		}
	})

	t.Run("missing ids leave the store unchanged", func(t *testing.T) {
		s := newLedger(t, NewClock(jan15).Now)
		id := mustAdd(t, s, core.Income, 500, notes("keep"))
		before := mustList(t, s)

		found, err := s.UpdateTransaction(ctx, id+100, core.Money{Cents: 1}, nil)
		if err != nil || found {
			t.Fatalf("update missing: found=%v err=%v", found, err)
		}
		found, err = s.DeleteTransaction(ctx, id+100)
		if err != nil || found {
			t.Fatalf("delete missing: found=%v err=%v", found, err)
		}

		after := mustList(t, s)
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("store changed:\nbefore %+v\nafter  %+v", before, after)
		}
	})

	t.Run("delete removes the row", func(t *testing.T) {
		s := newLedger(t, NewClock(jan15).Now)
		keep := mustAdd(t, s, core.Income, 500, nil)
		drop := mustAdd(t, s, core.Expense, 700, nil)

		found, err := s.DeleteTransaction(ctx, drop)
		if err != nil || !found {
			t.Fatalf("delete: found=%v err=%v", found, err)
		}
		txs := mustList(t, s)
		if len(txs) != 1 || txs[0].ID != keep {
			t.Fatalf("unexpected transactions after delete: %+v", txs)
		}
		found, _ = s.DeleteTransaction(ctx, drop)
		if found {
			t.Fatalf("second delete should report not found")
		}
	})

	t.Run("monthly sums follow the timestamp month", func(t *testing.T) {
		clock := NewClock(jan15)
		s := newLedger(t, clock.Now)
		mustAdd(t, s, core.Expense, 12000, nil)
		mustAdd(t, s, core.Expense, 3050, nil)
		mustAdd(t, s, core.Income, 99999, nil)
		clock.Set(jan31)
		mustAdd(t, s, core.Expense, 1, nil)
		clock.Set(feb1)
		mustAdd(t, s, core.Expense, 40000, nil)
		clock.Set(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
		mustAdd(t, s, core.Expense, 777, nil)

		sum, err := s.SumByMonth(ctx, jan, core.Expense)
		if err != nil || sum.Cents != 15051 {
			t.Fatalf("january expenses = %v (%v), want 150.51", sum, err)
		}
		sum, _ = s.SumByMonth(ctx, jan, core.Income)
		if sum.Cents != 99999 {
			t.Fatalf("january income = %v", sum)
		}
		sum, _ = s.SumByMonth(ctx, feb, core.Expense)
		if sum.Cents != 40000 {
			t.Fatalf("february expenses = %v", sum)
		}
		sum, _ = s.SumByMonth(ctx, feb, core.Income)
		if !sum.IsZero() {
			t.Fatalf("february income should be zero, got %v", sum)
		}

		b, err := s.TotalsByMonth(ctx)
		if err != nil {
			t.Fatalf("totals: %v", err)
		}
		want := core.Breakdown{
			{Month: core.NewMonth(2024, time.January), Kind: core.Expense}: {Cents: 777},
			{Month: jan, Kind: core.Expense}:                               {Cents: 15051},
			{Month: jan, Kind: core.Income}:                                {Cents: 99999},
			{Month: feb, Kind: core.Expense}:                               {Cents: 40000},
		}
		if !reflect.DeepEqual(b, want) {
			t.Fatalf("totals = %v, want %v", b, want)
		}
	})

	t.Run("empty ledger", func(t *testing.T) {
		s := newLedger(t, time.Now)
		if txs := mustList(t, s); len(txs) != 0 {
			t.Fatalf("expected no transactions, got %d", len(txs))
		}
		b, err := s.TotalsByMonth(ctx)
		if err != nil || len(b) != 0 {
			t.Fatalf("expected empty breakdown, got %v (%v)", b, err)
		}
	})

	t.Run("budget upsert", func(t *testing.T) {
		s := newLedger(t, time.Now)

		if _, err := s.GetBudget(ctx, jan); !errors.Is(err, core.ErrNoBudget) {
			t.Fatalf("expected ErrNoBudget, got %v", err)
		}

		for i := 0; i < 2; i++ {
			if err := s.SetBudget(ctx, jan, core.Money{Cents: 50000}); err != nil {
				t.Fatalf("set budget: %v", err)
			}
		}
		got, err := s.GetBudget(ctx, jan)
		if err != nil || got.Cents != 50000 {
			t.Fatalf("budget = %v (%v)", got, err)
		}

		if err := s.SetBudget(ctx, jan, core.Money{Cents: 42000}); err != nil {
			t.Fatalf("set budget: %v", err)
		}
		if err := s.SetBudget(ctx, core.NewMonth(2024, time.December), core.Money{Cents: 100}); err != nil {
			t.Fatalf("set budget: %v", err)
		}
		got, _ = s.GetBudget(ctx, jan)
		if got.Cents != 42000 {
			t.Fatalf("last write should win, got %v", got)
		}
		if _, err := s.GetBudget(ctx, core.NewMonth(2024, time.January)); !errors.Is(err, core.ErrNoBudget) {
			t.Fatalf("same month name in another year must not match, got %v", err)
		}

		budgets, err := s.ListBudgets(ctx)
		if err != nil {
			t.Fatalf("list budgets: %v", err)
		}
		want := []core.Budget{
			{Month: core.NewMonth(2024, time.December), Amount: core.Money{Cents: 100}},
			{Month: jan, Amount: core.Money{Cents: 42000}},
		}
		if !reflect.DeepEqual(budgets, want) {
			t.Fatalf("budgets = %v, want %v", budgets, want)
		}
	})
}

// RunUsers runs the credential store checks.
func RunUsers(t *testing.T, newUsers UserFactory) {
	ctx := context.Background()

	t.Run("create and lookup", func(t *testing.T) {
		s := newUsers(t)
		u, err := s.CreateUser(ctx, "alice", "hash-a")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if u.ID == 0 || u.Username != "alice" {
			t.Fatalf("unexpected user %+v", u)
		}

		got, err := s.GetUserByUsername(ctx, "alice")
		if err != nil || got.ID != u.ID || got.PasswordHash != "hash-a" {
			t.Fatalf("lookup = %+v (%v)", got, err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		s := newUsers(t)
		if _, err := s.CreateUser(ctx, "bob", "h1"); err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := s.CreateUser(ctx, "bob", "h2"); !errors.Is(err, core.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		got, _ := s.GetUserByUsername(ctx, "bob")
		if got.PasswordHash != "h1" {
			t.Fatalf("duplicate insert must not overwrite, got %q", got.PasswordHash)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		s := newUsers(t)
		if _, err := s.GetUserByUsername(ctx, "nobody"); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
