package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"finance/internal/core"
	applog "finance/internal/log"
)

// UserRepository stores credentials in their own database file.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(dbPath string) (*UserRepository, error) {
	db, err := openDatabase(dbPath, UsersSchema)
	if err != nil {
		return nil, err
	}
	return &UserRepository{db: db}, nil
}

func (r *UserRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser implements ports.UserStore
func (r *UserRepository) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users(username, password_hash) VALUES(?, ?)`, username, passwordHash)
	if isUniqueViolation(err) {
		return core.User{}, fmt.Errorf("create user %q: %w", username, core.ErrAlreadyExists)
	}
	if err != nil {
		return core.User{}, storageError(ctx, "insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, storageError(ctx, "read user id", err)
	}

	slog.InfoContext(ctx, "User registered",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldID, id)

	return core.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

// GetUserByUsername implements ports.UserStore
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	u := core.User{Username: username}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE username = ?`, username).Scan(&u.ID, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, fmt.Errorf("user %q: %w", username, core.ErrNotFound)
	}
	if err != nil {
		return core.User{}, storageError(ctx, "query user", err)
	}
	return u, nil
}
