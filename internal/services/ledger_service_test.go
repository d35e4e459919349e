package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"finance/internal/core"
	"finance/internal/storage/memory"
)

// brokenStore fails every call the way an unreachable database would.
type brokenStore struct {
	*memory.Store
}

var errDiskGone = fmt.Errorf("%w: disk I/O error", core.ErrStorageUnavailable)

func (brokenStore) AddTransaction(context.Context, core.Kind, core.Money, *string) (int64, error) {
	return 0, errDiskGone
}

func (brokenStore) UpdateTransaction(context.Context, int64, core.Money, *string) (bool, error) {
	return false, errDiskGone
}

func (brokenStore) DeleteTransaction(context.Context, int64) (bool, error) {
	return false, errDiskGone
}

func (brokenStore) ListTransactions(context.Context) ([]core.Transaction, error) {
	return nil, errDiskGone
}

func TestLedgerServiceAdd(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewLedgerService(store, nil)

	id, err := svc.Add(ctx, core.Expense, core.MustParseMoney("19.99"), "   ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	txs, _ := svc.List(ctx)
	if len(txs) != 1 || txs[0].ID != id || txs[0].Notes != nil {
		t.Fatalf("blank notes should be stored as absent: %+v", txs)
	}

	if _, err := svc.Add(ctx, core.Kind(7), core.Money{Cents: 1}, ""); !errors.Is(err, core.ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
	if _, err := svc.Add(ctx, core.Income, core.Money{Cents: -5}, ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if txs, _ := svc.List(ctx); len(txs) != 1 {
		t.Errorf("rejected input must not be stored, got %d rows", len(txs))
	}
}

func TestLedgerServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(memory.New(), nil)

	id, _ := svc.Add(ctx, core.Income, core.MustParseMoney("100"), "gift")
	if err := svc.Update(ctx, id, core.MustParseMoney("150"), "birthday gift"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	txs, _ := svc.List(ctx)
	if txs[0].Amount.String() != "150.00" || txs[0].NotesOr("") != "birthday gift" || txs[0].Kind != core.Income {
		t.Fatalf("unexpected transaction after update: %+v", txs[0])
	}

	before, _ := svc.List(ctx)
	if err := svc.Update(ctx, id+1, core.MustParseMoney("1"), ""); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
	if err := svc.Delete(ctx, id+1); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
	after, _ := svc.List(ctx)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("missing ids must leave the store unchanged")
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if txs, _ := svc.List(ctx); len(txs) != 0 {
		t.Fatalf("expected empty store, got %+v", txs)
	}
}

func TestLedgerServiceStorageFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(brokenStore{memory.New()}, nil)

	if _, err := svc.Add(ctx, core.Income, core.Money{Cents: 1}, ""); !errors.Is(err, core.ErrStorageUnavailable) {
		t.Errorf("Add: expected ErrStorageUnavailable, got %v", err)
	}
	if err := svc.Update(ctx, 1, core.Money{Cents: 1}, ""); !errors.Is(err, core.ErrStorageUnavailable) {
		t.Errorf("Update: expected ErrStorageUnavailable, got %v", err)
	}
	if err := svc.Delete(ctx, 1); !errors.Is(err, core.ErrStorageUnavailable) {
		t.Errorf("Delete: expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := svc.List(ctx); !errors.Is(err, core.ErrStorageUnavailable) {
		t.Errorf("List: expected ErrStorageUnavailable, got %v", err)
	}
}

func TestBudgetService(t *testing.T) {
	ctx := context.Background()
	svc := NewBudgetService(memory.New(), nil)

	if _, err := svc.Get(ctx, march); !errors.Is(err, core.ErrNoBudget) {
		t.Fatalf("expected ErrNoBudget, got %v", err)
	}
	for _, amount := range []string{"500", "500", "420.50"} {
		if err := svc.Set(ctx, march, core.MustParseMoney(amount)); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	got, err := svc.Get(ctx, march)
	if err != nil || got.String() != "420.50" {
		t.Fatalf("budget = %s (%v), want last write", got, err)
	}
	if err := svc.Set(ctx, april, core.Money{Cents: -1}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	budgets, err := svc.List(ctx)
	if err != nil || len(budgets) != 1 || budgets[0].Month != march {
		t.Fatalf("budgets = %+v (%v)", budgets, err)
	}
}
