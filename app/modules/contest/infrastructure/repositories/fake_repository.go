package contestdb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	CreateContestFn    func(ctx context.Context, contest *Contest) error
	GetContestByIDFn   func(ctx context.Context, id int64) (*Contest, error)
	GetActiveContestFn func(ctx context.Context) (*Contest, error)
	ListContestsFn     func(ctx context.Context, status ContestStatus) ([]Contest, error)
	UpdateContestFn    func(ctx context.Context, contest *Contest) error
	DeleteContestFn    func(ctx context.Context, id int64) error

	ActivateFn        func(ctx context.Context, id int64) error
	CompleteFn        func(ctx context.Context, id int64) error
	CompleteExpiredFn func(ctx context.Context) ([]Contest, error)

	AttachWinnerFn  func(ctx context.Context, db bun.IDB, contestID, modelID, entryID, votes int64) error
	MarkAnnouncedFn func(ctx context.Context, db bun.IDB, contestID int64) error

	RunInTxFn func(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

func (f *FakeRepository) CreateContest(ctx context.Context, contest *Contest) error {
	if f.CreateContestFn != nil {
		return f.CreateContestFn(ctx, contest)
	}
	contest.ID = 1
	return nil
}

func (f *FakeRepository) GetContestByID(ctx context.Context, id int64) (*Contest, error) {
	if f.GetContestByIDFn != nil {
		return f.GetContestByIDFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetActiveContest(ctx context.Context) (*Contest, error) {
	if f.GetActiveContestFn != nil {
		return f.GetActiveContestFn(ctx)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListContests(ctx context.Context, status ContestStatus) ([]Contest, error) {
	if f.ListContestsFn != nil {
		return f.ListContestsFn(ctx, status)
	}
	return nil, nil
}

func (f *FakeRepository) UpdateContest(ctx context.Context, contest *Contest) error {
	if f.UpdateContestFn != nil {
		return f.UpdateContestFn(ctx, contest)
	}
	return nil
}

func (f *FakeRepository) DeleteContest(ctx context.Context, id int64) error {
	if f.DeleteContestFn != nil {
		return f.DeleteContestFn(ctx, id)
	}
	return nil
}

func (f *FakeRepository) Activate(ctx context.Context, id int64) error {
	if f.ActivateFn != nil {
		return f.ActivateFn(ctx, id)
	}
	return nil
}

func (f *FakeRepository) Complete(ctx context.Context, id int64) error {
	if f.CompleteFn != nil {
		return f.CompleteFn(ctx, id)
	}
	return nil
}

func (f *FakeRepository) CompleteExpired(ctx context.Context) ([]Contest, error) {
	if f.CompleteExpiredFn != nil {
		return f.CompleteExpiredFn(ctx)
	}
	return nil, nil
}

func (f *FakeRepository) AttachWinner(ctx context.Context, db bun.IDB, contestID, modelID, entryID, votes int64) error {
	if f.AttachWinnerFn != nil {
		return f.AttachWinnerFn(ctx, db, contestID, modelID, entryID, votes)
	}
	return nil
}

func (f *FakeRepository) MarkAnnounced(ctx context.Context, db bun.IDB, contestID int64) error {
	if f.MarkAnnouncedFn != nil {
		return f.MarkAnnouncedFn(ctx, db, contestID)
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
