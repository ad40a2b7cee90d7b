package userservice

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	userdb "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/passwords"
	"github.com/runway-club/votewalk/pkg/jwt"
)

func newTestService(repo *userdb.FakeRepository) *UserService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	tokens := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(repo, tokens, logger, tracer, 24*time.Hour)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues a token pair", func(t *testing.T) {
		var created *userdb.User
		repo := &userdb.FakeRepository{
			CreateUserFn: func(ctx context.Context, user *userdb.User) error {
				created = user
				return nil
			},
		}

		svc := newTestService(repo)
		resp, err := svc.Register(ctx, "Model@Example.COM ", "hunter2hunter2")
		require.NoError(t, err)

		assert.Equal(t, "model@example.com", created.Email)
		assert.Equal(t, userdb.RoleUser, created.Role)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := newTestService(&userdb.FakeRepository{})
		_, err := svc.Register(ctx, "not-an-email", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("short password", func(t *testing.T) {
		svc := newTestService(&userdb.FakeRepository{})
		_, err := svc.Register(ctx, gofakeit.Email(), "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := &userdb.FakeRepository{
			CreateUserFn: func(ctx context.Context, user *userdb.User) error {
				return userdb.ErrEmailTaken
			},
		}

		svc := newTestService(repo)
		_, err := svc.Register(ctx, gofakeit.Email(), "hunter2hunter2")
		assert.ErrorIs(t, err, userdb.ErrEmailTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	password := "hunter2hunter2"
	hash, err := passwords.Hash(password)
	require.NoError(t, err)

	repo := &userdb.FakeRepository{
		GetUserByEmailFn: func(ctx context.Context, email string) (*userdb.User, error) {
			if email != "model@example.com" {
				return nil, userdb.ErrNotFound
			}
			return &userdb.User{ID: 1, Email: email, PasswordHash: hash, Role: userdb.RoleUser}, nil
		},
	}

	svc := newTestService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, "Model@example.com", password, "203.0.113.7")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "model@example.com", "wrong-password", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", password, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_RefreshRotation(t *testing.T) {
	ctx := context.Background()

	sessions := map[string]*userdb.Session{}
	user := &userdb.User{ID: 1, Email: "model@example.com", Role: userdb.RoleUser}

	repo := &userdb.FakeRepository{
		GetUserByEmailFn: func(ctx context.Context, email string) (*userdb.User, error) {
			return user, nil
		},
		GetUserByUUIDFn: func(ctx context.Context, id uuid.UUID) (*userdb.User, error) {
			return user, nil
		},
		CreateSessionFn: func(ctx context.Context, session *userdb.Session) error {
			sessions[session.TokenHash] = session
			return nil
		},
		GetSessionFn: func(ctx context.Context, tokenHash string) (*userdb.Session, error) {
			s, ok := sessions[tokenHash]
			if !ok {
				return nil, userdb.ErrNotFound
			}
			return s, nil
		},
		RevokeSessionFn: func(ctx context.Context, tokenHash string) error {
			delete(sessions, tokenHash)
			return nil
		},
	}

	svc := newTestService(repo)

	first, err := svc.issueTokens(ctx, user, "")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	// The rotated-out token must be dead.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
