package entrydb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	CreateEntryFn      func(ctx context.Context, entry *ContestEntry) error
	GetEntryByIDFn     func(ctx context.Context, id int64) (*ContestEntry, error)
	GetApprovedEntryFn func(ctx context.Context, contestID, modelID int64) (*ContestEntry, error)
	ListByContestFn    func(ctx context.Context, contestID int64, approvedOnly bool) ([]ContestEntry, error)
	SetStatusFn        func(ctx context.Context, entryID int64, status EntryStatus) (*ContestEntry, error)
	TopApprovedFn      func(ctx context.Context, contestID int64) ([]ContestEntry, error)

	UpdateVotesFn       func(ctx context.Context, db bun.IDB, entryID, votes int64) error
	ResetContestVotesFn func(ctx context.Context, db bun.IDB, contestID int64) error
	AssignRankingsFn    func(ctx context.Context, db bun.IDB, contestID int64) error
}

func (f *FakeRepository) CreateEntry(ctx context.Context, entry *ContestEntry) error {
	if f.CreateEntryFn != nil {
		return f.CreateEntryFn(ctx, entry)
	}
	entry.ID = 1
	return nil
}

func (f *FakeRepository) GetEntryByID(ctx context.Context, id int64) (*ContestEntry, error) {
	if f.GetEntryByIDFn != nil {
		return f.GetEntryByIDFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetApprovedEntry(ctx context.Context, contestID, modelID int64) (*ContestEntry, error) {
	if f.GetApprovedEntryFn != nil {
		return f.GetApprovedEntryFn(ctx, contestID, modelID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListByContest(ctx context.Context, contestID int64, approvedOnly bool) ([]ContestEntry, error) {
	if f.ListByContestFn != nil {
		return f.ListByContestFn(ctx, contestID, approvedOnly)
	}
	return nil, nil
}

func (f *FakeRepository) SetStatus(ctx context.Context, entryID int64, status EntryStatus) (*ContestEntry, error) {
	if f.SetStatusFn != nil {
		return f.SetStatusFn(ctx, entryID, status)
	}
	return &ContestEntry{ID: entryID, Status: status}, nil
}

func (f *FakeRepository) TopApproved(ctx context.Context, contestID int64) ([]ContestEntry, error) {
	if f.TopApprovedFn != nil {
		return f.TopApprovedFn(ctx, contestID)
	}
	return nil, nil
}

func (f *FakeRepository) UpdateVotes(ctx context.Context, db bun.IDB, entryID, votes int64) error {
	if f.UpdateVotesFn != nil {
		return f.UpdateVotesFn(ctx, db, entryID, votes)
	}
	return nil
}

func (f *FakeRepository) ResetContestVotes(ctx context.Context, db bun.IDB, contestID int64) error {
	if f.ResetContestVotesFn != nil {
		return f.ResetContestVotesFn(ctx, db, contestID)
	}
	return nil
}

func (f *FakeRepository) AssignRankings(ctx context.Context, db bun.IDB, contestID int64) error {
	if f.AssignRankingsFn != nil {
		return f.AssignRankingsFn(ctx, db, contestID)
	}
	return nil
}

var _ Repository = (*FakeRepository)(nil)
