package model

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	modelservice "github.com/runway-club/votewalk/app/modules/model/application"
	modelhandlers "github.com/runway-club/votewalk/app/modules/model/infrastructure/handlers"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/pkg/jwt"
)

// Module wires the model-profile stack.
type Module struct {
	Repo     modeldb.Repository
	Service  modelservice.Service
	Handlers *modelhandlers.ModelHandlers
	logger   *slog.Logger
}

// NewModule creates the model module and registers its HTTP routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	tokens jwt.Service,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing model module")

	repo := &modeldb.ModelDBImpl{DB: db}
	service := modelservice.NewService(repo, logger, obs.Tracer)
	handlers := modelhandlers.NewModelHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Route("/api/models", func(r chi.Router) {
			r.Get("/", handlers.HandleListModels)
			r.Get("/{modelID}", handlers.HandleGetModel)

			r.Group(func(r chi.Router) {
				r.Use(userhandlers.AuthMiddleware(tokens))
				r.Post("/me", handlers.HandleCreateProfile)
				r.Put("/me", handlers.HandleUpdateProfile)
				r.Get("/me", handlers.HandleGetOwnProfile)
			})
		})
	}

	return &Module{
		Repo:     repo,
		Service:  service,
		Handlers: handlers,
		logger:   logger,
	}, nil
}
