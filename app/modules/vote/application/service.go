package voteservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	contestservice "github.com/runway-club/votewalk/app/modules/contest/application"
	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

const leaderboardSize = 3

var (
	ErrContestNotActive = errors.New("contest is not open for voting")
	ErrEntryNotFound    = errors.New("model has no approved entry in this contest")
	ErrInvalidVoteType  = errors.New("unknown vote type")
)

// VoteService implements Service.
type VoteService struct {
	repo        votedb.Repository
	contestRepo contestdb.Repository
	entryRepo   entrydb.Repository
	modelRepo   modeldb.Repository
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *observability.Metrics
}

var _ Service = (*VoteService)(nil)

func NewService(
	repo votedb.Repository,
	contestRepo contestdb.Repository,
	entryRepo entrydb.Repository,
	modelRepo modeldb.Repository,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics *observability.Metrics,
) *VoteService {
	return &VoteService{
		repo:        repo,
		contestRepo: contestRepo,
		entryRepo:   entryRepo,
		modelRepo:   modelRepo,
		logger:      logger,
		tracer:      tracer,
		metrics:     metrics,
	}
}

// CastVote records one ballot for a model's approved entry in an active
// contest, then recomputes the contest tallies. A voter key gets one ballot
// per contest; repeats return DuplicateVoteError.
func (s *VoteService) CastVote(ctx context.Context, contestID, modelID int64, voterKey string, voteType votedb.VoteType, weight int) (*votedb.Vote, error) {
	ctx, span := s.tracer.Start(ctx, "VoteService.CastVote")
	defer span.End()

	if voteType == "" {
		voteType = votedb.TypeFree
	}
	if !voteType.IsValid() {
		return nil, ErrInvalidVoteType
	}
	if weight < 1 {
		weight = 1
	}

	contest, err := s.contestRepo.GetContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != contestdb.StatusActive {
		return nil, ErrContestNotActive
	}

	entry, err := s.entryRepo.GetApprovedEntry(ctx, contestID, modelID)
	if err != nil {
		if errors.Is(err, entrydb.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	existing, err := s.repo.FindContestVote(ctx, contestID, voterKey)
	if err != nil && !errors.Is(err, votedb.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		s.metrics.DuplicateVotes.Inc()
		return nil, &DuplicateVoteError{
			SameModel:    existing.ModelID == modelID,
			VotedModelID: existing.ModelID,
		}
	}

	vote := &votedb.Vote{
		EntryID:  entry.ID,
		VoterKey: voterKey,
		VoteType: voteType,
		Weight:   weight,
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		return nil, err
	}

	if err := s.RecomputeContestTallies(ctx, contestID); err != nil {
		return nil, err
	}

	s.metrics.VotesCast.WithLabelValues(string(voteType)).Inc()
	s.logger.InfoContext(ctx, "Vote cast",
		attr.Int64("contest_id", contestID),
		attr.Int64("model_id", modelID),
		attr.Int64("entry_id", entry.ID),
		attr.String("vote_type", string(voteType)),
	)
	return vote, nil
}

// RecomputeContestTallies rebuilds every derived counter for a contest from
// the ballot ledger. Pure aggregation, so running it twice is a no-op.
func (s *VoteService) RecomputeContestTallies(ctx context.Context, contestID int64) error {
	ctx, span := s.tracer.Start(ctx, "VoteService.RecomputeContestTallies")
	defer span.End()

	start := time.Now()

	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		tallies, err := s.repo.TallyContest(ctx, tx, contestID)
		if err != nil {
			return err
		}

		touched := make(map[int64]bool, len(tallies))
		for _, t := range tallies {
			if err := s.entryRepo.UpdateVotes(ctx, tx, t.EntryID, t.Votes); err != nil {
				return err
			}
			touched[t.ModelID] = true
		}

		for modelID := range touched {
			totals, err := s.repo.ModelTotals(ctx, tx, modelID)
			if err != nil {
				return err
			}
			if err := s.modelRepo.SetVoteCounters(ctx, tx, modelID, totals.ActiveVotes, totals.TotalVotes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to recompute tallies: %w", err)
	}

	s.metrics.TallyRecomputes.Inc()
	s.metrics.ObserveTally(time.Since(start))
	return nil
}

// GetVoteStatus reports whether a voter key holds a ballot in the contest.
func (s *VoteService) GetVoteStatus(ctx context.Context, contestID int64, voterKey string) (*VoteStatus, error) {
	record, err := s.repo.FindContestVote(ctx, contestID, voterKey)
	if err != nil {
		if errors.Is(err, votedb.ErrNotFound) {
			return &VoteStatus{}, nil
		}
		return nil, err
	}
	return &VoteStatus{
		HasVoted: true,
		EntryID:  &record.EntryID,
		ModelID:  &record.ModelID,
		VotedAt:  &record.CreatedAt,
	}, nil
}

// ActiveLeaderboard returns the top models across active contests.
func (s *VoteService) ActiveLeaderboard(ctx context.Context) ([]votedb.LeaderboardRow, error) {
	return s.repo.LeaderboardTop(ctx, leaderboardSize)
}

// VotesByDay serves the contest module's daily tally chart.
func (s *VoteService) VotesByDay(ctx context.Context, contestID int64) ([]contestservice.DayCount, error) {
	days, err := s.repo.VotesByDay(ctx, contestID)
	if err != nil {
		return nil, err
	}
	out := make([]contestservice.DayCount, len(days))
	for i, d := range days {
		out[i] = contestservice.DayCount{Day: d.Day, Count: d.Count}
	}
	return out, nil
}

// CreditBonusVotes turns a completed purchase into ballots on the buyer's
// approved entry in the active contest. The purchase UUID keys the ballots, so
// a replayed credit is visible in the ledger. Without an entry to attach to,
// only the model's lifetime counter is credited.
func (s *VoteService) CreditBonusVotes(ctx context.Context, purchaseUUID, buyerUUID uuid.UUID, packageID, votes int64, voteType votedb.VoteType) error {
	ctx, span := s.tracer.Start(ctx, "VoteService.CreditBonusVotes")
	defer span.End()

	model, err := s.modelRepo.GetModelByUserUUID(ctx, buyerUUID)
	if err != nil {
		if errors.Is(err, modeldb.ErrNotFound) {
			s.logger.WarnContext(ctx, "Purchase credit skipped, buyer has no model profile",
				attr.String("purchase_uuid", purchaseUUID.String()))
			return nil
		}
		return err
	}

	voterKey := "pkg:" + purchaseUUID.String()

	contest, err := s.contestRepo.GetActiveContest(ctx)
	if err != nil && !errors.Is(err, contestdb.ErrNotFound) {
		return err
	}

	var entry *entrydb.ContestEntry
	if contest != nil {
		entry, err = s.entryRepo.GetApprovedEntry(ctx, contest.ID, model.ID)
		if err != nil && !errors.Is(err, entrydb.ErrNotFound) {
			return err
		}
	}

	if entry == nil {
		s.logger.InfoContext(ctx, "No active entry for purchase credit, crediting model total",
			attr.Int64("model_id", model.ID),
			attr.Int64("votes", votes))
		return s.repo.CreditModelTotal(ctx, model.ID, votes)
	}

	ballots := make([]votedb.Vote, votes)
	for i := range ballots {
		ballots[i] = votedb.Vote{
			EntryID:   entry.ID,
			VoterKey:  voterKey,
			VoteType:  voteType,
			Weight:    1,
			PackageID: &packageID,
		}
	}
	if err := s.repo.CreateVotes(ctx, ballots); err != nil {
		return err
	}

	if err := s.RecomputeContestTallies(ctx, contest.ID); err != nil {
		return err
	}

	s.metrics.VotesCast.WithLabelValues(string(voteType)).Add(float64(votes))
	s.logger.InfoContext(ctx, "Purchase credited as ballots",
		attr.Int64("contest_id", contest.ID),
		attr.Int64("model_id", model.ID),
		attr.Int64("entry_id", entry.ID),
		attr.Int64("votes", votes),
	)
	return nil
}
