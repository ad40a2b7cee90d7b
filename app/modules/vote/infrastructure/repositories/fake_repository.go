package votedb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	CreateVoteFn  func(ctx context.Context, vote *Vote) error
	CreateVotesFn func(ctx context.Context, votes []Vote) error

	FindContestVoteFn  func(ctx context.Context, contestID int64, voterKey string) (*CastRecord, error)
	TallyContestFn     func(ctx context.Context, db bun.IDB, contestID int64) ([]EntryTally, error)
	ModelTotalsFn      func(ctx context.Context, db bun.IDB, modelID int64) (*ModelTotals, error)
	VotesByDayFn       func(ctx context.Context, contestID int64) ([]DayCount, error)
	LeaderboardTopFn   func(ctx context.Context, limit int) ([]LeaderboardRow, error)
	CreditModelTotalFn func(ctx context.Context, modelID, votes int64) error

	RunInTxFn func(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

func (f *FakeRepository) CreateVote(ctx context.Context, vote *Vote) error {
	if f.CreateVoteFn != nil {
		return f.CreateVoteFn(ctx, vote)
	}
	vote.ID = 1
	return nil
}

func (f *FakeRepository) CreateVotes(ctx context.Context, votes []Vote) error {
	if f.CreateVotesFn != nil {
		return f.CreateVotesFn(ctx, votes)
	}
	return nil
}

func (f *FakeRepository) FindContestVote(ctx context.Context, contestID int64, voterKey string) (*CastRecord, error) {
	if f.FindContestVoteFn != nil {
		return f.FindContestVoteFn(ctx, contestID, voterKey)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) TallyContest(ctx context.Context, db bun.IDB, contestID int64) ([]EntryTally, error) {
	if f.TallyContestFn != nil {
		return f.TallyContestFn(ctx, db, contestID)
	}
	return nil, nil
}

func (f *FakeRepository) ModelTotals(ctx context.Context, db bun.IDB, modelID int64) (*ModelTotals, error) {
	if f.ModelTotalsFn != nil {
		return f.ModelTotalsFn(ctx, db, modelID)
	}
	return &ModelTotals{}, nil
}

func (f *FakeRepository) VotesByDay(ctx context.Context, contestID int64) ([]DayCount, error) {
	if f.VotesByDayFn != nil {
		return f.VotesByDayFn(ctx, contestID)
	}
	return nil, nil
}

func (f *FakeRepository) LeaderboardTop(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if f.LeaderboardTopFn != nil {
		return f.LeaderboardTopFn(ctx, limit)
	}
	return nil, nil
}

func (f *FakeRepository) CreditModelTotal(ctx context.Context, modelID, votes int64) error {
	if f.CreditModelTotalFn != nil {
		return f.CreditModelTotalFn(ctx, modelID, votes)
	}
	return nil
}

func (f *FakeRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	if f.RunInTxFn != nil {
		return f.RunInTxFn(ctx, fn)
	}
	return fn(ctx, bun.Tx{})
}

var _ Repository = (*FakeRepository)(nil)
