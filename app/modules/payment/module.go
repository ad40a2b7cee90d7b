package payment

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	paymentservice "github.com/runway-club/votewalk/app/modules/payment/application"
	paymenthandlers "github.com/runway-club/votewalk/app/modules/payment/infrastructure/handlers"
	paymentdb "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/config"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/pkg/jwt"
)

// Module wires packages, checkout, and the provider webhook.
type Module struct {
	Repo     paymentdb.Repository
	Service  paymentservice.Service
	Handlers *paymenthandlers.PaymentHandlers
	logger   *slog.Logger
}

// NewModule creates the payment module and registers its HTTP routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	votes paymentservice.VoteCreditor,
	tokens jwt.Service,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing payment module")

	repo := &paymentdb.PaymentDBImpl{DB: db}
	service := paymentservice.NewService(repo, votes, cfg.Payment, logger, obs.Tracer, obs.Metrics)
	handlers := paymenthandlers.NewPaymentHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Get("/api/packages", handlers.HandleListPackages)
		httpRouter.Post("/webhook", handlers.HandleWebhook)

		httpRouter.Group(func(r chi.Router) {
			r.Use(userhandlers.AuthMiddleware(tokens))
			r.Post("/api/checkout", handlers.HandleCreateCheckout)
		})
	}

	return &Module{
		Repo:     repo,
		Service:  service,
		Handlers: handlers,
		logger:   logger,
	}, nil
}
