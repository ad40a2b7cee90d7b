package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"

	"github.com/runway-club/votewalk/app/modules/contest"
	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	"github.com/runway-club/votewalk/app/modules/entry"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	"github.com/runway-club/votewalk/app/modules/model"
	"github.com/runway-club/votewalk/app/modules/payment"
	"github.com/runway-club/votewalk/app/modules/prize"
	"github.com/runway-club/votewalk/app/modules/user"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/app/modules/vote"
	"github.com/runway-club/votewalk/config"
	"github.com/runway-club/votewalk/internal/bundb"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/internal/observability/attr"
	"github.com/runway-club/votewalk/internal/uploads"
)

// App assembles the modules over one database handle and one router.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	Router        chi.Router

	UserModule    *user.Module
	ModelModule   *model.Module
	ContestModule *contest.Module
	EntryModule   *entry.Module
	VoteModule    *vote.Module
	PaymentModule *payment.Module
	PrizeModule   *prize.Module

	httpServer *http.Server
}

// NewApp wires every module. Modules that read each other's tables share
// repository instances, not service calls.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability.Environment)

	db, err := bundb.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(userhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	router.Use(requestMetrics(obs.Metrics))

	store, err := uploads.NewStore(cfg.HTTP.UploadDir, cfg.HTTP.PublicBaseURL)
	if err != nil {
		return nil, err
	}

	// Cross-module repository handles. The impls are stateless over the
	// shared *bun.DB, so modules can hold their own copies.
	contestRepo := &contestdb.ContestDBImpl{DB: db}
	entryRepo := &entrydb.EntryDBImpl{DB: db}

	userModule, err := user.NewModule(ctx, cfg, obs, db, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user module: %w", err)
	}

	modelModule, err := model.NewModule(ctx, obs, db, userModule.Tokens, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model module: %w", err)
	}

	voteModule, err := vote.NewModule(ctx, obs, db, contestRepo, entryRepo, modelModule.Repo, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vote module: %w", err)
	}

	contestModule, err := contest.NewModule(ctx, obs, db, cfg.Postgres.DSN,
		entryRepo, modelModule.Repo, voteModule.Service, userModule.Tokens, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize contest module: %w", err)
	}

	entryModule, err := entry.NewModule(ctx, obs, db, contestRepo, modelModule.Repo, store, userModule.Tokens, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize entry module: %w", err)
	}

	paymentModule, err := payment.NewModule(ctx, cfg, obs, db, voteModule.Service, userModule.Tokens, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment module: %w", err)
	}

	prizeModule, err := prize.NewModule(ctx, obs, db, contestRepo, modelModule.Repo, userModule.Tokens, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prize module: %w", err)
	}

	// Uploaded photos are served as static files.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir()))))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	return &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		Router:        router,
		UserModule:    userModule,
		ModelModule:   modelModule,
		ContestModule: contestModule,
		EntryModule:   entryModule,
		VoteModule:    voteModule,
		PaymentModule: paymentModule,
		PrizeModule:   prizeModule,
	}, nil
}

// Run starts the queue and the HTTP server, blocking until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	a.Observability.ServeMetrics(ctx, a.Config.Observability.MetricsAddress)

	if err := a.ContestModule.Queue.Start(ctx); err != nil {
		return err
	}

	a.httpServer = &http.Server{
		Addr:              a.Config.HTTP.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("addr", a.Config.HTTP.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Shutdown drains the HTTP server, stops the queue, and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	logger := a.Observability.Logger
	var errs []error

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if err := a.ContestModule.Queue.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("queue shutdown: %w", err))
	}
	if err := a.Observability.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("db close: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.InfoContext(ctx, "Application shut down gracefully")
	return nil
}

// requestMetrics observes request duration per route pattern and status class.
func requestMetrics(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(ww.Status()/100) + "xx"
			metrics.HTTPRequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
		})
	}
}
