// Package memory keeps the finance and credential stores in process memory.
// It backs DATA_BACKEND=memory and serves as a test double for the services.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"finance/internal/core"
)

type Store struct {
	mu      sync.Mutex
	now     func() time.Time
	nextID  int64
	items   []core.Transaction
	budgets map[core.Month]core.Money
	users   map[string]core.User
	userSeq int64
}

func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock returns a store that stamps transactions using now.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		now:     now,
		budgets: map[core.Month]core.Money{},
		users:   map[string]core.User{},
	}
}

// SetClock replaces the clock used for new transactions.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddTransaction stores the transaction with a fresh id.
func (s *Store) AddTransaction(_ context.Context, kind core.Kind, amount core.Money, notes *string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.items = append(s.items, core.Transaction{
		ID:        s.nextID,
		Kind:      kind,
		Amount:    amount,
		Notes:     copyNotes(notes),
		Timestamp: s.now().UTC().Truncate(time.Second),
	})
	return s.nextID, nil
}

func (s *Store) UpdateTransaction(_ context.Context, id int64, amount core.Money, notes *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Amount = amount
			s.items[i].Notes = copyNotes(notes)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListTransactions returns copies, newest first with ties broken by id.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	for i, t := range s.items {
		t.Notes = copyNotes(t.Notes)
		out[i] = t
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) SumByMonth(_ context.Context, month core.Month, kind core.Kind) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, t := range s.items {
		if t.Kind == kind && month.Contains(t.Timestamp) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (s *Store) TotalsByMonth(_ context.Context) (core.Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := core.Breakdown{}
	for _, t := range s.items {
		key := core.MonthKind{Month: t.Month(), Kind: t.Kind}
		out[key] = out[key].Add(t.Amount)
	}
	return out, nil
}

func (s *Store) SetBudget(_ context.Context, month core.Month, amount core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[month] = amount
	return nil
}

func (s *Store) GetBudget(_ context.Context, month core.Month) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	amount, ok := s.budgets[month]
	if !ok {
		return core.Money{}, fmt.Errorf("%s: %w", month, core.ErrNoBudget)
	}
	return amount, nil
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.budgets))
	for m, a := range s.budgets {
		out = append(out, core.Budget{Month: m, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, username, passwordHash string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return core.User{}, fmt.Errorf("create user %q: %w", username, core.ErrAlreadyExists)
	}
	s.userSeq++
	u := core.User{ID: s.userSeq, Username: username, PasswordHash: passwordHash}
	s.users[username] = u
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return core.User{}, fmt.Errorf("user %q: %w", username, core.ErrNotFound)
	}
	return u, nil
}

func copyNotes(n *string) *string {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
