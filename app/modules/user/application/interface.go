package userservice

import (
	"context"

	"github.com/google/uuid"

	userdb "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories"
)

// AuthResponse carries the token pair issued on login/refresh.
type AuthResponse struct {
	UserUUID     uuid.UUID       `json:"user_uuid"`
	Role         userdb.UserRole `json:"role"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"-"`
}

// Service defines account and session operations.
type Service interface {
	Register(ctx context.Context, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password, ip string) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, id uuid.UUID) (*userdb.User, error)
}
