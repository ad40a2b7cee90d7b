package userservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	userdb "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability/attr"
	"github.com/runway-club/votewalk/internal/passwords"
	"github.com/runway-club/votewalk/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// UserService implements Service on top of the user repository.
type UserService struct {
	repo       userdb.Repository
	tokens     jwt.Service
	logger     *slog.Logger
	tracer     trace.Tracer
	refreshTTL time.Duration
}

var _ Service = (*UserService)(nil)

func NewService(repo userdb.Repository, tokens jwt.Service, logger *slog.Logger, tracer trace.Tracer, refreshTTL time.Duration) *UserService {
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		logger:     logger,
		tracer:     tracer,
		refreshTTL: refreshTTL,
	}
}

// Register creates an account and logs it in.
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") || len(email) < 3 {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &userdb.User{
		UUID:         uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         userdb.RoleUser,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, userdb.ErrEmailTaken) {
			return nil, userdb.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", attr.String("user_uuid", user.UUID.String()))

	return s.issueTokens(ctx, user, "")
}

// Login verifies credentials and issues a token pair.
func (s *UserService) Login(ctx context.Context, email, password, ip string) (*AuthResponse, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()

	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := passwords.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, passwords.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.issueTokens(ctx, user, ip)
}

// Refresh rotates the refresh token and issues a new access token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Refresh")
	defer span.End()

	claims, err := s.tokens.ValidateToken(refreshToken, jwt.KindRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	hash := hashToken(refreshToken)
	if _, err := s.repo.GetSession(ctx, hash); err != nil {
		return nil, ErrInvalidCredentials
	}

	userUUID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Rotate: revoke the presented token before issuing the next one.
	if err := s.repo.RevokeSession(ctx, hash); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return s.issueTokens(ctx, user, "")
}

// Logout revokes the presented refresh token.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()

	if refreshToken == "" {
		return nil
	}
	return s.repo.RevokeSession(ctx, hashToken(refreshToken))
}

// GetUser returns the account for an authenticated identity.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*userdb.User, error) {
	return s.repo.GetUserByUUID(ctx, id)
}

func (s *UserService) issueTokens(ctx context.Context, user *userdb.User, ip string) (*AuthResponse, error) {
	access, err := s.tokens.GenerateAccessToken(user.UUID.String(), jwt.Role(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.UUID.String(), jwt.Role(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &userdb.Session{
		TokenHash: hashToken(refresh),
		UserUUID:  user.UUID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if ip != "" {
		session.IPAddress = &ip
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &AuthResponse{
		UserUUID:     user.UUID,
		Role:         user.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
