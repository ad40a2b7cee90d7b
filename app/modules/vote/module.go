package vote

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	voteservice "github.com/runway-club/votewalk/app/modules/vote/application"
	votehandlers "github.com/runway-club/votewalk/app/modules/vote/infrastructure/handlers"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability"
)

// Module wires the vote ledger and tally engine.
type Module struct {
	Repo     votedb.Repository
	Service  voteservice.Service
	Handlers *votehandlers.VoteHandlers
	logger   *slog.Logger
}

// NewModule creates the vote module and registers its HTTP routes. Ballot
// casting is rate limited per IP.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	contestRepo contestdb.Repository,
	entryRepo entrydb.Repository,
	modelRepo modeldb.Repository,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing vote module")

	repo := &votedb.VoteDBImpl{DB: db}
	service := voteservice.NewService(repo, contestRepo, entryRepo, modelRepo, logger, obs.Tracer, obs.Metrics)
	handlers := votehandlers.NewVoteHandlers(service, logger)

	if httpRouter != nil {
		limiter := userhandlers.NewIPRateLimiter(2, 5)
		httpRouter.Group(func(r chi.Router) {
			r.Use(userhandlers.RateLimitMiddleware(limiter))
			r.Post("/api/votes", handlers.HandleCastVote)
		})

		httpRouter.Get("/api/contests/{contestID}/vote-status", handlers.HandleVoteStatus)
		httpRouter.Get("/api/leaderboard/active", handlers.HandleLeaderboard)
	}

	return &Module{
		Repo:     repo,
		Service:  service,
		Handlers: handlers,
		logger:   logger,
	}, nil
}
