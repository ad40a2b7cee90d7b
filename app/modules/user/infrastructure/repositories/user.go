package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// UserDBImpl is a repository for user data operations.
type UserDBImpl struct {
	DB *bun.DB
}

// CreateUser creates a new user within a transaction.
func (db *UserDBImpl) CreateUser(ctx context.Context, user *User) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by email.
func (db *UserDBImpl) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := db.DB.NewSelect().Model(user).Where("lower(email) = lower(?)", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUUID retrieves a user by their public UUID.
func (db *UserDBImpl) GetUserByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	user := &User{}
	err := db.DB.NewSelect().Model(user).Where("uuid = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateSession records an issued refresh token.
func (db *UserDBImpl) CreateSession(ctx context.Context, session *Session) error {
	_, err := db.DB.NewInsert().Model(session).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a live session by refresh-token hash.
func (db *UserDBImpl) GetSession(ctx context.Context, tokenHash string) (*Session, error) {
	session := &Session{}
	err := db.DB.NewSelect().Model(session).Where("token_hash = ?", tokenHash).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if session.Revoked || session.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionRevoked
	}
	return session, nil
}

// RevokeSession marks a session revoked. Revoking an unknown hash is not an error.
func (db *UserDBImpl) RevokeSession(ctx context.Context, tokenHash string) error {
	_, err := db.DB.NewUpdate().
		Model((*Session)(nil)).
		Set("revoked = true").
		Set("revoked_at = now()").
		Where("token_hash = ?", tokenHash).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
