package entry

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entryservice "github.com/runway-club/votewalk/app/modules/entry/application"
	entryhandlers "github.com/runway-club/votewalk/app/modules/entry/infrastructure/handlers"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/internal/uploads"
	"github.com/runway-club/votewalk/pkg/jwt"
)

// Module wires entry submission and moderation.
type Module struct {
	Repo     entrydb.Repository
	Service  entryservice.Service
	Handlers *entryhandlers.EntryHandlers
	logger   *slog.Logger
}

// NewModule creates the entry module and registers its HTTP routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	contestRepo contestdb.Repository,
	modelRepo modeldb.Repository,
	store *uploads.Store,
	tokens jwt.Service,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing entry module")

	repo := &entrydb.EntryDBImpl{DB: db}
	service := entryservice.NewService(repo, contestRepo, modelRepo, logger, obs.Tracer)
	handlers := entryhandlers.NewEntryHandlers(service, store, logger)

	if httpRouter != nil {
		httpRouter.Get("/api/contests/{contestID}/entries", handlers.HandleList)

		httpRouter.Group(func(r chi.Router) {
			r.Use(userhandlers.AuthMiddleware(tokens))
			r.Post("/api/contests/{contestID}/entries", handlers.HandleSubmit)
		})

		httpRouter.Route("/api/admin/entries", func(r chi.Router) {
			r.Use(userhandlers.AuthMiddleware(tokens))
			r.Use(userhandlers.RequireAdmin)

			r.Post("/{entryID}/approve", handlers.HandleApprove)
			r.Post("/{entryID}/reject", handlers.HandleReject)
		})

		httpRouter.Group(func(r chi.Router) {
			r.Use(userhandlers.AuthMiddleware(tokens))
			r.Use(userhandlers.RequireAdmin)
			r.Get("/api/admin/contests/{contestID}/entries", handlers.HandleList)
		})
	}

	return &Module{
		Repo:     repo,
		Service:  service,
		Handlers: handlers,
		logger:   logger,
	}, nil
}
