package votehandlers

import (
	"context"

	"github.com/google/uuid"

	contestservice "github.com/runway-club/votewalk/app/modules/contest/application"
	voteservice "github.com/runway-club/votewalk/app/modules/vote/application"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
)

type FakeVoteService struct {
	CastVoteFn                func(ctx context.Context, contestID, modelID int64, voterKey string, voteType votedb.VoteType, weight int) (*votedb.Vote, error)
	RecomputeContestTalliesFn func(ctx context.Context, contestID int64) error
	GetVoteStatusFn           func(ctx context.Context, contestID int64, voterKey string) (*voteservice.VoteStatus, error)
	ActiveLeaderboardFn       func(ctx context.Context) ([]votedb.LeaderboardRow, error)
	CreditBonusVotesFn        func(ctx context.Context, purchaseUUID, buyerUUID uuid.UUID, packageID, votes int64, voteType votedb.VoteType) error
	VotesByDayFn              func(ctx context.Context, contestID int64) ([]contestservice.DayCount, error)
}

func (f *FakeVoteService) CastVote(ctx context.Context, contestID, modelID int64, voterKey string, voteType votedb.VoteType, weight int) (*votedb.Vote, error) {
	if f.CastVoteFn != nil {
		return f.CastVoteFn(ctx, contestID, modelID, voterKey, voteType, weight)
	}
	return &votedb.Vote{ID: 1, EntryID: 1, VoterKey: voterKey, VoteType: voteType}, nil
}

func (f *FakeVoteService) RecomputeContestTallies(ctx context.Context, contestID int64) error {
	if f.RecomputeContestTalliesFn != nil {
		return f.RecomputeContestTalliesFn(ctx, contestID)
	}
	return nil
}

func (f *FakeVoteService) GetVoteStatus(ctx context.Context, contestID int64, voterKey string) (*voteservice.VoteStatus, error) {
	if f.GetVoteStatusFn != nil {
		return f.GetVoteStatusFn(ctx, contestID, voterKey)
	}
	return &voteservice.VoteStatus{}, nil
}

func (f *FakeVoteService) ActiveLeaderboard(ctx context.Context) ([]votedb.LeaderboardRow, error) {
	if f.ActiveLeaderboardFn != nil {
		return f.ActiveLeaderboardFn(ctx)
	}
	return nil, nil
}

func (f *FakeVoteService) CreditBonusVotes(ctx context.Context, purchaseUUID, buyerUUID uuid.UUID, packageID, votes int64, voteType votedb.VoteType) error {
	if f.CreditBonusVotesFn != nil {
		return f.CreditBonusVotesFn(ctx, purchaseUUID, buyerUUID, packageID, votes, voteType)
	}
	return nil
}

func (f *FakeVoteService) VotesByDay(ctx context.Context, contestID int64) ([]contestservice.DayCount, error) {
	if f.VotesByDayFn != nil {
		return f.VotesByDayFn(ctx, contestID)
	}
	return nil, nil
}

var _ voteservice.Service = (*FakeVoteService)(nil)
