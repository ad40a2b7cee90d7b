package prize

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	prizeservice "github.com/runway-club/votewalk/app/modules/prize/application"
	prizehandlers "github.com/runway-club/votewalk/app/modules/prize/infrastructure/handlers"
	prizedb "github.com/runway-club/votewalk/app/modules/prize/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/pkg/jwt"
)

// Module wires prize claims and complaints.
type Module struct {
	Repo     prizedb.Repository
	Service  prizeservice.Service
	Handlers *prizehandlers.PrizeHandlers
	logger   *slog.Logger
}

// NewModule creates the prize module and registers its HTTP routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	contestRepo contestdb.Repository,
	modelRepo modeldb.Repository,
	tokens jwt.Service,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing prize module")

	repo := &prizedb.PrizeDBImpl{DB: db}
	service := prizeservice.NewService(repo, contestRepo, modelRepo, logger, obs.Tracer)
	handlers := prizehandlers.NewPrizeHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Post("/api/complaints", handlers.HandleSubmitComplaint)

		httpRouter.Group(func(r chi.Router) {
			r.Use(userhandlers.AuthMiddleware(tokens))
			r.Post("/api/prize-requests", handlers.HandleSubmitPrizeRequest)
		})

		httpRouter.Group(func(r chi.Router) {
			r.Use(userhandlers.AuthMiddleware(tokens))
			r.Use(userhandlers.RequireAdmin)

			r.Get("/api/admin/prize-requests", handlers.HandleListPrizeRequests)
			r.Put("/api/admin/prize-requests/{requestID}", handlers.HandleUpdatePrizeRequest)
			r.Get("/api/admin/complaints", handlers.HandleListComplaints)
			r.Put("/api/admin/complaints/{complaintID}", handlers.HandleUpdateComplaint)
		})
	}

	return &Module{
		Repo:     repo,
		Service:  service,
		Handlers: handlers,
		logger:   logger,
	}, nil
}
