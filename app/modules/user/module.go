package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	userservice "github.com/runway-club/votewalk/app/modules/user/application"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	userdb "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories"
	"github.com/runway-club/votewalk/config"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/pkg/jwt"
)

// Module wires the account/session stack.
type Module struct {
	Repo     userdb.Repository
	Service  userservice.Service
	Handlers *userhandlers.AuthHandlers
	Tokens   jwt.Service
	logger   *slog.Logger
}

// NewModule creates the user module and registers its HTTP routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing user module")

	repo := &userdb.UserDBImpl{DB: db}
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	service := userservice.NewService(repo, tokens, logger, obs.Tracer, cfg.JWT.RefreshTTL)

	// Use secure cookies unless running against localhost in development.
	secureCookies := cfg.Observability.Environment != "development"
	if strings.Contains(cfg.HTTP.PublicBaseURL, "localhost") || strings.HasPrefix(cfg.HTTP.PublicBaseURL, "http://") {
		secureCookies = false
	}

	handlers := userhandlers.NewAuthHandlers(service, logger, obs.Tracer, secureCookies, cfg.JWT.RefreshTTL)

	if httpRouter != nil {
		limiter := userhandlers.NewIPRateLimiter(5, 10)
		httpRouter.Route("/api/auth", func(r chi.Router) {
			r.Use(userhandlers.RateLimitMiddleware(limiter))

			r.Post("/register", handlers.HandleRegister)
			r.Post("/login", handlers.HandleLogin)
			r.Post("/refresh", handlers.HandleRefresh)
			r.Post("/logout", handlers.HandleLogout)

			r.Group(func(r chi.Router) {
				r.Use(userhandlers.AuthMiddleware(tokens))
				r.Get("/me", handlers.HandleMe)
			})
		})
	}

	return &Module{
		Repo:     repo,
		Service:  service,
		Handlers: handlers,
		Tokens:   tokens,
		logger:   logger,
	}, nil
}
