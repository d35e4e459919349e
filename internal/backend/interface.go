package backend

import (
	"context"

	"finance/internal/ports"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// LedgerResult contains the finance store and optional cleanup function
type LedgerResult struct {
	Ledger  ports.Ledger
	Cleanup CleanupFunc
}

// UsersResult contains the credential store and optional cleanup function
type UsersResult struct {
	Users   ports.UserStore
	Cleanup CleanupFunc
}

// Close runs the cleanup function if there is one.
func (r *LedgerResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Close runs the cleanup function if there is one.
func (r *UsersResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates stores based on configuration
type Factory interface {
	// CreateLedger opens the finance store (transactions and budgets)
	CreateLedger(ctx context.Context, config Config) (*LedgerResult, error)
	// CreateUsers opens the credential store
	CreateUsers(ctx context.Context, config Config) (*UsersResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	FinanceDBPath string
	UsersDBPath   string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
