package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	Income Kind = iota + 1
	Expense
)

type (
	// Kind tells income and expense transactions apart.
	Kind int

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID        int64
		Kind      Kind
		Amount    Money
		Notes     *string // nil when the user left notes blank
		Timestamp time.Time
	}

	Budget struct {
		Month  Month
		Amount Money
	}

	User struct {
		ID           int64
		Username     string
		PasswordHash string
	}

	// MonthKind keys monthly aggregates.
	MonthKind struct {
		Month Month
		Kind  Kind
	}

	// Breakdown maps each (month, kind) pair that has transactions to its total.
	Breakdown map[MonthKind]Money

	// BudgetStatus compares a month's expenses with its declared budget.
	// Exactly one of Remaining and Overage is meaningful, chosen by Exceeded.
	BudgetStatus struct {
		Month        Month
		Budget       Money
		TotalExpense Money
		Remaining    Money
		Overage      Money
		Exceeded     bool
	}
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotFound           = errors.New("not found")
	ErrNoBudget           = fmt.Errorf("no budget set: %w", ErrNotFound)
	ErrNoData             = errors.New("no data available")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidKind        = errors.New("invalid transaction type")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrAlreadyExists      = errors.New("username already exists")
	ErrInvalidPassword    = errors.New("password does not meet the criteria")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Kinds returns every kind in presentation order.
func Kinds() []Kind {
	return []Kind{Income, Expense}
}

// ParseKind accepts "income" or "expense" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (k Kind) String() string {
	switch k {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeNotes returns nil for blank notes and the trimmed text otherwise.
func NormalizeNotes(notes string) *string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil
	}
	return &notes
}

// NotesOr returns the transaction notes or fallback when there are none.
func (t Transaction) NotesOr(fallback string) string {
	if t.Notes == nil {
		return fallback
	}
	return *t.Notes
}

// Month returns the calendar month the transaction counts towards.
func (t Transaction) Month() Month {
	return MonthOf(t.Timestamp)
}

// Months returns the distinct months present in b, ascending.
func (b Breakdown) Months() []Month {
	seen := make(map[Month]struct{}, len(b))
	months := make([]Month, 0, len(b))
	for key := range b {
		if _, ok := seen[key.Month]; ok {
			continue
		}
		seen[key.Month] = struct{}{}
		months = append(months, key.Month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

// Total returns the total for a month and kind, zero when absent.
func (b Breakdown) Total(m Month, k Kind) Money {
	return b[MonthKind{Month: m, Kind: k}]
}
