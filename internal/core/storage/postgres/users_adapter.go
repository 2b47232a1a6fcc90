package postgres

import (
	"context"
	"database/sql"
	"fmt"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
)

// UserAdapter implements storage.UserStore on the shared connection.
type UserAdapter struct {
	db *sql.DB
}

// NewUserAdapter creates a user adapter sharing an existing connection.
func NewUserAdapter(db *sql.DB) *UserAdapter {
	return &UserAdapter{db: db}
}

// FindUser returns the account for username, or storage.ErrNotFound.
func (a *UserAdapter) FindUser(ctx context.Context, username string) (*v1.User, error) {
	var user v1.User
	err := a.db.QueryRowContext(ctx, queryFindUser, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.Role,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// SaveUser upserts an operator account.
func (a *UserAdapter) SaveUser(ctx context.Context, user *v1.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if _, err := a.db.ExecContext(ctx, querySaveUser, user.Username, user.PasswordHash, user.Role); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
