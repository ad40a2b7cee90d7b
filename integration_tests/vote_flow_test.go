package integrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun/migrate"
	"go.opentelemetry.io/otel/trace/noop"

	contestmigrations "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories/migrations"
	entrymigrations "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories/migrations"
	modelmigrations "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories/migrations"
	paymentmigrations "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories/migrations"
	prizemigrations "github.com/runway-club/votewalk/app/modules/prize/infrastructure/repositories/migrations"
	usermigrations "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories/migrations"
	votemigrations "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories/migrations"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	userdb "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories"
	voteservice "github.com/runway-club/votewalk/app/modules/vote/application"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/bundb"
	"github.com/runway-club/votewalk/internal/observability"
)

// TestVoteFlow exercises the full path against real Postgres: account, model
// profile, contest activation, entry approval, ballots, tallies, and the
// one-ballot-per-voter constraint.
func TestVoteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("votewalk_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := bundb.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// FK order: referenced tables first.
	for _, migrations := range []*migrate.Migrations{
		usermigrations.Migrations,
		modelmigrations.Migrations,
		contestmigrations.Migrations,
		entrymigrations.Migrations,
		votemigrations.Migrations,
		paymentmigrations.Migrations,
		prizemigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(db, migrations)
		require.NoError(t, migrator.Init(ctx))
		_, err := migrator.Migrate(ctx)
		require.NoError(t, err)
	}

	userRepo := &userdb.UserDBImpl{DB: db}
	modelRepo := &modeldb.ModelDBImpl{DB: db}
	contestRepo := &contestdb.ContestDBImpl{DB: db}
	entryRepo := &entrydb.EntryDBImpl{DB: db}
	voteRepo := &votedb.VoteDBImpl{DB: db}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	votes := voteservice.NewService(voteRepo, contestRepo, entryRepo, modelRepo, logger, tracer, metrics)

	// Account and model profile.
	user := &userdb.User{
		UUID:         uuid.New(),
		Email:        "ava@example.com",
		PasswordHash: "irrelevant-here",
		Role:         userdb.RoleUser,
	}
	require.NoError(t, userRepo.CreateUser(ctx, user))

	model := &modeldb.Model{
		UUID:        uuid.New(),
		UserUUID:    user.UUID,
		DisplayName: "Ava",
		Active:      true,
	}
	require.NoError(t, modelRepo.CreateModel(ctx, model))

	// Contest with an approved entry.
	contest := &contestdb.Contest{
		Title:         "Integration Shoot",
		StartsAt:      time.Now().Add(-time.Hour),
		EndsAt:        time.Now().Add(time.Hour),
		PrizeCurrency: "USD",
	}
	require.NoError(t, contestRepo.CreateContest(ctx, contest))
	require.NoError(t, contestRepo.Activate(ctx, contest.ID))

	entry := &entrydb.ContestEntry{
		ContestID: contest.ID,
		ModelID:   model.ID,
		Title:     "Golden Hour",
		PhotoURL:  "https://example.com/uploads/a.jpg",
		Status:    entrydb.StatusPending,
	}
	require.NoError(t, entryRepo.CreateEntry(ctx, entry))
	_, err = entryRepo.SetStatus(ctx, entry.ID, entrydb.StatusApproved)
	require.NoError(t, err)

	// Two voters, then a duplicate from the first.
	_, err = votes.CastVote(ctx, contest.ID, model.ID, "203.0.113.1", votedb.TypeFree, 1)
	require.NoError(t, err)
	_, err = votes.CastVote(ctx, contest.ID, model.ID, "203.0.113.2", votedb.TypeFree, 1)
	require.NoError(t, err)

	_, err = votes.CastVote(ctx, contest.ID, model.ID, "203.0.113.1", votedb.TypeFree, 1)
	var dup *voteservice.DuplicateVoteError
	require.ErrorAs(t, err, &dup)
	assert.True(t, dup.SameModel)

	// Tallies landed on the entry and the model counters.
	got, err := entryRepo.GetEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Votes)

	gotModel, err := modelRepo.GetModelByID(ctx, model.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gotModel.ActiveContestVotes)
	assert.Equal(t, int64(2), gotModel.TotalVotes)

	// Recomputing from the ledger changes nothing.
	require.NoError(t, votes.RecomputeContestTallies(ctx, contest.ID))
	got, err = entryRepo.GetEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Votes)

	// Vote status reflects the ledger.
	status, err := votes.GetVoteStatus(ctx, contest.ID, "203.0.113.1")
	require.NoError(t, err)
	assert.True(t, status.HasVoted)

	status, err = votes.GetVoteStatus(ctx, contest.ID, "203.0.113.99")
	require.NoError(t, err)
	assert.False(t, status.HasVoted)

	// A second model whose entry gets rejected after collecting a ballot:
	// the recompute drops its votes from the entry, the model counters, and
	// the leaderboard.
	user2 := &userdb.User{
		UUID:         uuid.New(),
		Email:        "brie@example.com",
		PasswordHash: "irrelevant-here",
		Role:         userdb.RoleUser,
	}
	require.NoError(t, userRepo.CreateUser(ctx, user2))

	model2 := &modeldb.Model{
		UUID:        uuid.New(),
		UserUUID:    user2.UUID,
		DisplayName: "Brie",
		Active:      true,
	}
	require.NoError(t, modelRepo.CreateModel(ctx, model2))

	entry2 := &entrydb.ContestEntry{
		ContestID: contest.ID,
		ModelID:   model2.ID,
		Title:     "Blue Hour",
		PhotoURL:  "https://example.com/uploads/b.jpg",
		Status:    entrydb.StatusPending,
	}
	require.NoError(t, entryRepo.CreateEntry(ctx, entry2))
	_, err = entryRepo.SetStatus(ctx, entry2.ID, entrydb.StatusApproved)
	require.NoError(t, err)

	_, err = votes.CastVote(ctx, contest.ID, model2.ID, "203.0.113.3", votedb.TypeFree, 1)
	require.NoError(t, err)

	gotModel2, err := modelRepo.GetModelByID(ctx, model2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gotModel2.TotalVotes)

	_, err = entryRepo.SetStatus(ctx, entry2.ID, entrydb.StatusRejected)
	require.NoError(t, err)
	require.NoError(t, votes.RecomputeContestTallies(ctx, contest.ID))

	got2, err := entryRepo.GetEntryByID(ctx, entry2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got2.Votes)

	gotModel2, err = modelRepo.GetModelByID(ctx, model2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gotModel2.ActiveContestVotes)
	assert.Equal(t, int64(0), gotModel2.TotalVotes)

	board, err := votes.ActiveLeaderboard(ctx)
	require.NoError(t, err)
	for _, row := range board {
		assert.NotEqual(t, model2.ID, row.ModelID)
	}

	// Package credit with no approved entry lands on the model's bonus
	// counter and survives a recompute.
	require.NoError(t, votes.CreditBonusVotes(ctx, uuid.New(), user2.UUID, 2, 25, votedb.TypePower))

	gotModel2, err = modelRepo.GetModelByID(ctx, model2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), gotModel2.BonusVotes)
	assert.Equal(t, int64(25), gotModel2.TotalVotes)

	require.NoError(t, votes.RecomputeContestTallies(ctx, contest.ID))
	gotModel2, err = modelRepo.GetModelByID(ctx, model2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), gotModel2.TotalVotes)

	// Activating another contest completes the running one; only one
	// contest is ever active.
	next := &contestdb.Contest{
		Title:         "Winter Shoot",
		StartsAt:      time.Now().Add(time.Hour),
		EndsAt:        time.Now().Add(48 * time.Hour),
		PrizeCurrency: "USD",
	}
	require.NoError(t, contestRepo.CreateContest(ctx, next))
	require.NoError(t, contestRepo.Activate(ctx, next.ID))

	first, err := contestRepo.GetContestByID(ctx, contest.ID)
	require.NoError(t, err)
	assert.Equal(t, contestdb.StatusCompleted, first.Status)

	second, err := contestRepo.GetContestByID(ctx, next.ID)
	require.NoError(t, err)
	assert.Equal(t, contestdb.StatusActive, second.Status)

	active, err := contestRepo.GetActiveContest(ctx)
	require.NoError(t, err)
	assert.Equal(t, next.ID, active.ID)
}
