package voteservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability"
)

func newTestService(
	repo *votedb.FakeRepository,
	contestRepo *contestdb.FakeRepository,
	entryRepo *entrydb.FakeRepository,
	modelRepo *modeldb.FakeRepository,
) *VoteService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	return NewService(repo, contestRepo, entryRepo, modelRepo, logger, tracer, metrics)
}

func activeContest(id int64) *contestdb.Contest {
	return &contestdb.Contest{
		ID:       id,
		Title:    "Summer Shoot",
		Status:   contestdb.StatusActive,
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   time.Now().Add(time.Hour),
	}
}

func TestVoteService_CastVote(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		voteType  votedb.VoteType
		setupMock func(r *votedb.FakeRepository, c *contestdb.FakeRepository, e *entrydb.FakeRepository)
		verify    func(t *testing.T, vote *votedb.Vote, err error)
	}{
		{
			name: "success records ballot and recomputes",
			setupMock: func(r *votedb.FakeRepository, c *contestdb.FakeRepository, e *entrydb.FakeRepository) {
				c.GetContestByIDFn = func(ctx context.Context, id int64) (*contestdb.Contest, error) {
					return activeContest(id), nil
				}
				e.GetApprovedEntryFn = func(ctx context.Context, contestID, modelID int64) (*entrydb.ContestEntry, error) {
					return &entrydb.ContestEntry{ID: 42, ContestID: contestID, ModelID: modelID, Status: entrydb.StatusApproved}, nil
				}
			},
			verify: func(t *testing.T, vote *votedb.Vote, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(42), vote.EntryID)
				assert.Equal(t, votedb.TypeFree, vote.VoteType)
				assert.Equal(t, 1, vote.Weight)
			},
		},
		{
			name: "contest not active",
			setupMock: func(r *votedb.FakeRepository, c *contestdb.FakeRepository, e *entrydb.FakeRepository) {
				c.GetContestByIDFn = func(ctx context.Context, id int64) (*contestdb.Contest, error) {
					return &contestdb.Contest{ID: id, Status: contestdb.StatusCompleted}, nil
				}
			},
			verify: func(t *testing.T, vote *votedb.Vote, err error) {
				assert.ErrorIs(t, err, ErrContestNotActive)
			},
		},
		{
			name: "no approved entry for model",
			setupMock: func(r *votedb.FakeRepository, c *contestdb.FakeRepository, e *entrydb.FakeRepository) {
				c.GetContestByIDFn = func(ctx context.Context, id int64) (*contestdb.Contest, error) {
					return activeContest(id), nil
				}
				e.GetApprovedEntryFn = func(ctx context.Context, contestID, modelID int64) (*entrydb.ContestEntry, error) {
					return nil, entrydb.ErrNotFound
				}
			},
			verify: func(t *testing.T, vote *votedb.Vote, err error) {
				assert.ErrorIs(t, err, ErrEntryNotFound)
			},
		},
		{
			name: "duplicate ballot for same model",
			setupMock: func(r *votedb.FakeRepository, c *contestdb.FakeRepository, e *entrydb.FakeRepository) {
				c.GetContestByIDFn = func(ctx context.Context, id int64) (*contestdb.Contest, error) {
					return activeContest(id), nil
				}
				e.GetApprovedEntryFn = func(ctx context.Context, contestID, modelID int64) (*entrydb.ContestEntry, error) {
					return &entrydb.ContestEntry{ID: 42, ContestID: contestID, ModelID: modelID}, nil
				}
				r.FindContestVoteFn = func(ctx context.Context, contestID int64, voterKey string) (*votedb.CastRecord, error) {
					return &votedb.CastRecord{VoteID: 7, EntryID: 42, ModelID: 5}, nil
				}
			},
			verify: func(t *testing.T, vote *votedb.Vote, err error) {
				var dup *DuplicateVoteError
				require.ErrorAs(t, err, &dup)
				assert.True(t, dup.SameModel)
				assert.Equal(t, int64(5), dup.VotedModelID)
			},
		},
		{
			name: "duplicate ballot for another model",
			setupMock: func(r *votedb.FakeRepository, c *contestdb.FakeRepository, e *entrydb.FakeRepository) {
				c.GetContestByIDFn = func(ctx context.Context, id int64) (*contestdb.Contest, error) {
					return activeContest(id), nil
				}
				e.GetApprovedEntryFn = func(ctx context.Context, contestID, modelID int64) (*entrydb.ContestEntry, error) {
					return &entrydb.ContestEntry{ID: 42, ContestID: contestID, ModelID: modelID}, nil
				}
				r.FindContestVoteFn = func(ctx context.Context, contestID int64, voterKey string) (*votedb.CastRecord, error) {
					return &votedb.CastRecord{VoteID: 7, EntryID: 99, ModelID: 8}, nil
				}
			},
			verify: func(t *testing.T, vote *votedb.Vote, err error) {
				var dup *DuplicateVoteError
				require.ErrorAs(t, err, &dup)
				assert.False(t, dup.SameModel)
				assert.Equal(t, int64(8), dup.VotedModelID)
			},
		},
		{
			name:     "invalid vote type",
			voteType: votedb.VoteType("mega"),
			verify: func(t *testing.T, vote *votedb.Vote, err error) {
				assert.ErrorIs(t, err, ErrInvalidVoteType)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &votedb.FakeRepository{}
			contestRepo := &contestdb.FakeRepository{}
			entryRepo := &entrydb.FakeRepository{}
			modelRepo := &modeldb.FakeRepository{}
			if tt.setupMock != nil {
				tt.setupMock(repo, contestRepo, entryRepo)
			}

			svc := newTestService(repo, contestRepo, entryRepo, modelRepo)
			vote, err := svc.CastVote(ctx, 1, 5, "203.0.113.7", tt.voteType, 1)
			tt.verify(t, vote, err)
		})
	}
}

func TestVoteService_RecomputeContestTallies(t *testing.T) {
	ctx := context.Background()

	entryVotes := map[int64]int64{}
	counters := map[int64][2]int64{}

	repo := &votedb.FakeRepository{
		TallyContestFn: func(ctx context.Context, db bun.IDB, contestID int64) ([]votedb.EntryTally, error) {
			return []votedb.EntryTally{
				{EntryID: 1, ModelID: 10, Votes: 3},
				{EntryID: 2, ModelID: 11, Votes: 0},
			}, nil
		},
		ModelTotalsFn: func(ctx context.Context, db bun.IDB, modelID int64) (*votedb.ModelTotals, error) {
			if modelID == 10 {
				return &votedb.ModelTotals{ActiveVotes: 3, TotalVotes: 8}, nil
			}
			return &votedb.ModelTotals{}, nil
		},
	}
	entryRepo := &entrydb.FakeRepository{
		UpdateVotesFn: func(ctx context.Context, db bun.IDB, entryID, votes int64) error {
			entryVotes[entryID] = votes
			return nil
		},
	}
	modelRepo := &modeldb.FakeRepository{
		SetVoteCountersFn: func(ctx context.Context, db bun.IDB, modelID, activeVotes, totalVotes int64) error {
			counters[modelID] = [2]int64{activeVotes, totalVotes}
			return nil
		},
	}

	svc := newTestService(repo, &contestdb.FakeRepository{}, entryRepo, modelRepo)

	// Running twice must land on the same derived state.
	for i := 0; i < 2; i++ {
		require.NoError(t, svc.RecomputeContestTallies(ctx, 1))
	}

	assert.Equal(t, int64(3), entryVotes[1])
	assert.Equal(t, int64(0), entryVotes[2])
	assert.Equal(t, [2]int64{3, 8}, counters[10])
	assert.Equal(t, [2]int64{0, 0}, counters[11])
}

func TestVoteService_GetVoteStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("no ballot yet", func(t *testing.T) {
		svc := newTestService(&votedb.FakeRepository{}, &contestdb.FakeRepository{}, &entrydb.FakeRepository{}, &modeldb.FakeRepository{})

		status, err := svc.GetVoteStatus(ctx, 1, "203.0.113.7")
		require.NoError(t, err)
		assert.False(t, status.HasVoted)
		assert.Nil(t, status.EntryID)
	})

	t.Run("existing ballot", func(t *testing.T) {
		votedAt := time.Now().Add(-time.Minute)
		repo := &votedb.FakeRepository{
			FindContestVoteFn: func(ctx context.Context, contestID int64, voterKey string) (*votedb.CastRecord, error) {
				return &votedb.CastRecord{VoteID: 7, EntryID: 42, ModelID: 5, CreatedAt: votedAt}, nil
			},
		}
		svc := newTestService(repo, &contestdb.FakeRepository{}, &entrydb.FakeRepository{}, &modeldb.FakeRepository{})

		status, err := svc.GetVoteStatus(ctx, 1, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, status.HasVoted)
		assert.Equal(t, int64(42), *status.EntryID)
		assert.Equal(t, int64(5), *status.ModelID)
	})
}

func TestVoteService_CreditBonusVotes(t *testing.T) {
	ctx := context.Background()
	buyerUUID := uuid.New()
	purchaseUUID := uuid.New()

	t.Run("credits ballots on active entry", func(t *testing.T) {
		var created []votedb.Vote
		repo := &votedb.FakeRepository{
			CreateVotesFn: func(ctx context.Context, votes []votedb.Vote) error {
				created = votes
				return nil
			},
		}
		contestRepo := &contestdb.FakeRepository{
			GetActiveContestFn: func(ctx context.Context) (*contestdb.Contest, error) {
				return activeContest(1), nil
			},
		}
		entryRepo := &entrydb.FakeRepository{
			GetApprovedEntryFn: func(ctx context.Context, contestID, modelID int64) (*entrydb.ContestEntry, error) {
				return &entrydb.ContestEntry{ID: 42, ContestID: contestID, ModelID: modelID}, nil
			},
		}
		modelRepo := &modeldb.FakeRepository{
			GetModelByUserUUIDFn: func(ctx context.Context, userUUID uuid.UUID) (*modeldb.Model, error) {
				return &modeldb.Model{ID: 5, UserUUID: userUUID}, nil
			},
		}

		svc := newTestService(repo, contestRepo, entryRepo, modelRepo)
		err := svc.CreditBonusVotes(ctx, purchaseUUID, buyerUUID, 3, 25, votedb.TypeVIP)
		require.NoError(t, err)

		require.Len(t, created, 25)
		assert.Equal(t, "pkg:"+purchaseUUID.String(), created[0].VoterKey)
		assert.Equal(t, votedb.TypeVIP, created[0].VoteType)
		require.NotNil(t, created[0].PackageID)
		assert.Equal(t, int64(3), *created[0].PackageID)
	})

	t.Run("no active entry falls back to lifetime counter", func(t *testing.T) {
		var credited int64
		repo := &votedb.FakeRepository{
			CreditModelTotalFn: func(ctx context.Context, modelID, votes int64) error {
				credited = votes
				return nil
			},
			CreateVotesFn: func(ctx context.Context, votes []votedb.Vote) error {
				t.Fatal("no ballots expected without an entry")
				return nil
			},
		}
		modelRepo := &modeldb.FakeRepository{
			GetModelByUserUUIDFn: func(ctx context.Context, userUUID uuid.UUID) (*modeldb.Model, error) {
				return &modeldb.Model{ID: 5, UserUUID: userUUID}, nil
			},
		}

		svc := newTestService(repo, &contestdb.FakeRepository{}, &entrydb.FakeRepository{}, modelRepo)
		err := svc.CreditBonusVotes(ctx, purchaseUUID, buyerUUID, 3, 25, votedb.TypePower)
		require.NoError(t, err)
		assert.Equal(t, int64(25), credited)
	})

	t.Run("buyer without model profile is skipped", func(t *testing.T) {
		svc := newTestService(&votedb.FakeRepository{}, &contestdb.FakeRepository{}, &entrydb.FakeRepository{}, &modeldb.FakeRepository{})
		err := svc.CreditBonusVotes(ctx, purchaseUUID, buyerUUID, 3, 25, votedb.TypePower)
		assert.NoError(t, err)
	})

	t.Run("repo failure propagates", func(t *testing.T) {
		boom := errors.New("db down")
		modelRepo := &modeldb.FakeRepository{
			GetModelByUserUUIDFn: func(ctx context.Context, userUUID uuid.UUID) (*modeldb.Model, error) {
				return nil, boom
			},
		}
		svc := newTestService(&votedb.FakeRepository{}, &contestdb.FakeRepository{}, &entrydb.FakeRepository{}, modelRepo)
		err := svc.CreditBonusVotes(ctx, purchaseUUID, buyerUUID, 3, 25, votedb.TypePower)
		assert.ErrorIs(t, err, boom)
	})
}
