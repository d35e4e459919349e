package app

import (
	"context"
	"errors"
	"strings"

	"finance/internal/console"
	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/services"
)

const timestampLayout = "2006-01-02 15:04:05"

// TransactionManager records, lists, edits and deletes transactions.
type TransactionManager struct {
	p      *console.Prompter
	ledger *services.LedgerService
}

func NewTransactionManager(p *console.Prompter, ledger *services.LedgerService) *TransactionManager {
	return &TransactionManager{p: p, ledger: ledger}
}

func (t *TransactionManager) Menu(logger *applog.Logger) *console.Menu {
	m := console.NewMenu(t.p, logger, "Expense and Income Manager",
		console.Option{Label: "Add Income", Run: t.adder(core.Income)},
		console.Option{Label: "Add Expense", Run: t.adder(core.Expense)},
		console.Option{Label: "View Transactions", Run: t.View},
		console.Option{Label: "Edit Transaction", Run: t.Edit},
		console.Option{Label: "Delete Transaction", Run: t.Delete},
		console.Option{Label: "Exit"},
	)
	m.Loop = true
	m.Goodbye = "Exiting... Goodbye!"
	return m
}

func (t *TransactionManager) adder(kind core.Kind) console.Action {
	return func(ctx context.Context) error { return t.Add(ctx, kind) }
}

func (t *TransactionManager) Add(ctx context.Context, kind core.Kind) error {
	amount, err := t.p.Money(ctx, "Enter amount: ")
	if err != nil {
		return err
	}
	notes, err := t.p.Line(ctx, "Enter notes (optional): ")
	if err != nil {
		return err
	}
	if _, err := t.ledger.Add(ctx, kind, amount, notes); err != nil {
		return err
	}
	t.p.Printf("%s added successfully!\n", kind)
	return nil
}

func (t *TransactionManager) View(ctx context.Context) error {
	txs, err := t.ledger.List(ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		t.p.Println("No transactions recorded.")
		return nil
	}

	t.p.Println("\nTransactions:")
	t.p.Printf("%-5s %-10s %-10s %-30s %-20s\n", "ID", "Type", "Amount", "Notes", "Timestamp")
	t.p.Println(strings.Repeat("-", 71))
	for _, tx := range txs {
		t.p.Printf("%-5d %-10s %-10s %-30s %-20s\n",
			tx.ID, tx.Kind, tx.Amount, tx.NotesOr("N/A"), tx.Timestamp.UTC().Format(timestampLayout))
	}
	return nil
}

func (t *TransactionManager) Edit(ctx context.Context) error {
	id, err := t.p.Int64(ctx, "Enter the ID of the transaction to edit: ")
	if err != nil {
		return err
	}
	amount, err := t.p.Money(ctx, "Enter new amount: ")
	if err != nil {
		return err
	}
	notes, err := t.p.Line(ctx, "Enter new notes (optional): ")
	if err != nil {
		return err
	}
	err = t.ledger.Update(ctx, id, amount, notes)
	if errors.Is(err, core.ErrNotFound) {
		t.p.Println("Transaction not found.")
		return nil
	}
	if err != nil {
		return err
	}
	t.p.Println("Transaction updated successfully!")
	return nil
}

func (t *TransactionManager) Delete(ctx context.Context) error {
	id, err := t.p.Int64(ctx, "Enter the ID of the transaction to delete: ")
	if err != nil {
		return err
	}
	err = t.ledger.Delete(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		t.p.Println("Transaction not found.")
		return nil
	}
	if err != nil {
		return err
	}
	t.p.Println("Transaction deleted successfully!")
	return nil
}
