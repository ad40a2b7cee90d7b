package contest

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	contestservice "github.com/runway-club/votewalk/app/modules/contest/application"
	contesthandlers "github.com/runway-club/votewalk/app/modules/contest/infrastructure/handlers"
	contestqueue "github.com/runway-club/votewalk/app/modules/contest/infrastructure/queue"
	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/pkg/jwt"
)

// Module wires the contest lifecycle stack, including the background sweep
// that completes expired contests.
type Module struct {
	Repo     contestdb.Repository
	Service  contestservice.Service
	Handlers *contesthandlers.ContestHandlers
	Queue    *contestqueue.Service
	logger   *slog.Logger
}

// NewModule creates the contest module, registers its HTTP routes, and builds
// (but does not start) the River sweep queue.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	dsn string,
	entryRepo entrydb.Repository,
	modelRepo modeldb.Repository,
	tally contestservice.TallyReader,
	tokens jwt.Service,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing contest module")

	repo := &contestdb.ContestDBImpl{DB: db}
	service := contestservice.NewService(repo, entryRepo, modelRepo, tally, logger, obs.Tracer, obs.Metrics)

	queue, err := contestqueue.NewService(ctx, dsn, service, logger)
	if err != nil {
		return nil, err
	}

	handlers := contesthandlers.NewContestHandlers(service, logger, obs.Tracer)

	// Flat registrations; the entry module adds its own routes under the
	// same /api/contests prefix.
	if httpRouter != nil {
		httpRouter.Get("/api/contests", handlers.HandleList)
		httpRouter.Get("/api/contests/active", handlers.HandleActive)
		httpRouter.Get("/api/contests/{contestID}", handlers.HandleGet)

		httpRouter.Group(func(r chi.Router) {
			r.Use(userhandlers.AuthMiddleware(tokens))
			r.Use(userhandlers.RequireAdmin)

			r.Post("/api/admin/contests", handlers.HandleCreate)
			r.Post("/api/admin/contests/complete-expired", handlers.HandleCompleteExpired)
			r.Put("/api/admin/contests/{contestID}", handlers.HandleUpdate)
			r.Delete("/api/admin/contests/{contestID}", handlers.HandleDelete)
			r.Post("/api/admin/contests/{contestID}/activate", handlers.HandleActivate)
			r.Post("/api/admin/contests/{contestID}/set-winner", handlers.HandleSetWinner)
			r.Get("/api/admin/contests/{contestID}/winner", handlers.HandleWinnerPreview)
			r.Get("/api/admin/contests/{contestID}/chart", handlers.HandleChart)
			r.Get("/api/admin/contests/{contestID}/export", handlers.HandleExport)
		})
	}

	return &Module{
		Repo:     repo,
		Service:  service,
		Handlers: handlers,
		Queue:    queue,
		logger:   logger,
	}, nil
}
