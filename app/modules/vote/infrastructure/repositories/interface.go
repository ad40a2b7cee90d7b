package votedb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("vote not found")

// Repository defines the vote ledger and its aggregation queries.
type Repository interface {
	CreateVote(ctx context.Context, vote *Vote) error
	CreateVotes(ctx context.Context, votes []Vote) error

	// FindContestVote returns the ballot a voter key already cast in a
	// contest, joined through entries. ErrNotFound when none exists.
	FindContestVote(ctx context.Context, contestID int64, voterKey string) (*CastRecord, error)

	// TallyContest counts ballots per entry in a contest. Only approved
	// entries count; others report zero.
	TallyContest(ctx context.Context, db bun.IDB, contestID int64) ([]EntryTally, error)

	// ModelTotals sums ballots on a model's approved entries, overall and
	// restricted to active contests.
	ModelTotals(ctx context.Context, db bun.IDB, modelID int64) (*ModelTotals, error)

	VotesByDay(ctx context.Context, contestID int64) ([]DayCount, error)
	LeaderboardTop(ctx context.Context, limit int) ([]LeaderboardRow, error)

	// CreditModelTotal credits a model's bonus counter directly, for
	// package credits that have no entry to attach ballots to.
	CreditModelTotal(ctx context.Context, modelID, votes int64) error

	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

var _ Repository = (*VoteDBImpl)(nil)
