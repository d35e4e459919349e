package backend

import (
	"context"
	"fmt"

	applog "finance/internal/log"
	"finance/internal/storage"
	"finance/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	return &DefaultFactory{
		logger: applog.For(logger, applog.ComponentBackend),
	}
}

// CreateLedger implements Factory.CreateLedger
func (f *DefaultFactory) CreateLedger(ctx context.Context, config Config) (*LedgerResult, error) {
	if !config.Type.IsValid() {
		return nil, invalidTypeError(config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		if config.FinanceDBPath == "" {
			return nil, fmt.Errorf("SQLite database path is required for sqlite backend")
		}
		repo, err := storage.NewLedgerRepository(config.FinanceDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize finance database: %w", err)
		}
		f.logger.DebugContext(ctx, "Initialized SQLite ledger", applog.FieldPath, config.FinanceDBPath)
		return &LedgerResult{Ledger: repo, Cleanup: repo.Close}, nil
	case MemoryBackend:
		f.logger.DebugContext(ctx, "Initialized memory ledger")
		return &LedgerResult{Ledger: memory.New()}, nil
	default:
		return nil, invalidTypeError(config.Type)
	}
}

// CreateUsers implements Factory.CreateUsers
func (f *DefaultFactory) CreateUsers(ctx context.Context, config Config) (*UsersResult, error) {
	if !config.Type.IsValid() {
		return nil, invalidTypeError(config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		if config.UsersDBPath == "" {
			return nil, fmt.Errorf("SQLite database path is required for sqlite backend")
		}
		repo, err := storage.NewUserRepository(config.UsersDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize users database: %w", err)
		}
		f.logger.DebugContext(ctx, "Initialized SQLite user store", applog.FieldPath, config.UsersDBPath)
		return &UsersResult{Users: repo, Cleanup: repo.Close}, nil
	case MemoryBackend:
		f.logger.DebugContext(ctx, "Initialized memory user store")
		return &UsersResult{Users: memory.New()}, nil
	default:
		return nil, invalidTypeError(config.Type)
	}
}
