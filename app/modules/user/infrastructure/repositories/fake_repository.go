package userdb

import (
	"context"

	"github.com/google/uuid"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	CreateUserFn     func(ctx context.Context, user *User) error
	GetUserByEmailFn func(ctx context.Context, email string) (*User, error)
	GetUserByUUIDFn  func(ctx context.Context, id uuid.UUID) (*User, error)
	CreateSessionFn  func(ctx context.Context, session *Session) error
	GetSessionFn     func(ctx context.Context, tokenHash string) (*Session, error)
	RevokeSessionFn  func(ctx context.Context, tokenHash string) error
}

func (f *FakeRepository) CreateUser(ctx context.Context, user *User) error {
	if f.CreateUserFn != nil {
		return f.CreateUserFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (f *FakeRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if f.GetUserByEmailFn != nil {
		return f.GetUserByEmailFn(ctx, email)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetUserByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	if f.GetUserByUUIDFn != nil {
		return f.GetUserByUUIDFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) CreateSession(ctx context.Context, session *Session) error {
	if f.CreateSessionFn != nil {
		return f.CreateSessionFn(ctx, session)
	}
	return nil
}

func (f *FakeRepository) GetSession(ctx context.Context, tokenHash string) (*Session, error) {
	if f.GetSessionFn != nil {
		return f.GetSessionFn(ctx, tokenHash)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) RevokeSession(ctx context.Context, tokenHash string) error {
	if f.RevokeSessionFn != nil {
		return f.RevokeSessionFn(ctx, tokenHash)
	}
	return nil
}

var _ Repository = (*FakeRepository)(nil)
