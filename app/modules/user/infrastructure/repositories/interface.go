package userdb

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user data operations.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUUID(ctx context.Context, id uuid.UUID) (*User, error)
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, tokenHash string) (*Session, error)
	RevokeSession(ctx context.Context, tokenHash string) error
}

var _ Repository = (*UserDBImpl)(nil)
