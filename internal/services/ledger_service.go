package services

import (
	"context"
	"fmt"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

// LedgerService validates transaction input before it reaches the store.
type LedgerService struct {
	store ports.TransactionStore
	log   *applog.Logger
}

func NewLedgerService(store ports.TransactionStore, logger *applog.Logger) *LedgerService {
	return &LedgerService{
		store: store,
		log:   applog.For(logger, applog.ComponentLedger),
	}
}

// Add records a new transaction and returns its id. Blank notes are stored as absent.
func (s *LedgerService) Add(ctx context.Context, kind core.Kind, amount core.Money, notes string) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("add transaction: %w", core.ErrInvalidKind)
	}
	if err := amount.Validate(); err != nil {
		return 0, fmt.Errorf("add %s: %w", kind, err)
	}

	id, err := s.store.AddTransaction(ctx, kind, amount, core.NormalizeNotes(notes))
	if err != nil {
		return 0, fmt.Errorf("add %s: %w", kind, err)
	}
	s.log.Operation(ctx, applog.OpCreate, nil,
		applog.FieldID, id,
		applog.FieldKind, kind.String(),
		applog.FieldAmountCents, amount.Cents)
	return id, nil
}

// Update replaces the amount and notes of transaction id.
// It returns core.ErrNotFound when no such transaction exists.
func (s *LedgerService) Update(ctx context.Context, id int64, amount core.Money, notes string) error {
	if err := amount.Validate(); err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	found, err := s.store.UpdateTransaction(ctx, id, amount, core.NormalizeNotes(notes))
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	if !found {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	s.log.Operation(ctx, applog.OpUpdate, nil, applog.FieldID, id, applog.FieldAmountCents, amount.Cents)
	return nil
}

// Delete removes transaction id, returning core.ErrNotFound when it does not exist.
func (s *LedgerService) Delete(ctx context.Context, id int64) error {
	found, err := s.store.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if !found {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	s.log.Operation(ctx, applog.OpDelete, nil, applog.FieldID, id)
	return nil
}

// List returns every transaction, newest first.
func (s *LedgerService) List(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}
