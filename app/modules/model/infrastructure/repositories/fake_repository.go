package modeldb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	CreateModelFn        func(ctx context.Context, model *Model) error
	GetModelByIDFn       func(ctx context.Context, id int64) (*Model, error)
	GetModelByUserUUIDFn func(ctx context.Context, userUUID uuid.UUID) (*Model, error)
	UpdateProfileFn      func(ctx context.Context, model *Model) error
	ListActiveFn         func(ctx context.Context, limit, offset int) ([]Model, error)

	SetVoteCountersFn         func(ctx context.Context, db bun.IDB, modelID, activeVotes, totalVotes int64) error
	IncrementContestsJoinedFn func(ctx context.Context, modelID int64) error
	RecordContestWinFn        func(ctx context.Context, db bun.IDB, modelID int64) error
}

func (f *FakeRepository) CreateModel(ctx context.Context, model *Model) error {
	if f.CreateModelFn != nil {
		return f.CreateModelFn(ctx, model)
	}
	model.ID = 1
	return nil
}

func (f *FakeRepository) GetModelByID(ctx context.Context, id int64) (*Model, error) {
	if f.GetModelByIDFn != nil {
		return f.GetModelByIDFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetModelByUserUUID(ctx context.Context, userUUID uuid.UUID) (*Model, error) {
	if f.GetModelByUserUUIDFn != nil {
		return f.GetModelByUserUUIDFn(ctx, userUUID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) UpdateProfile(ctx context.Context, model *Model) error {
	if f.UpdateProfileFn != nil {
		return f.UpdateProfileFn(ctx, model)
	}
	return nil
}

func (f *FakeRepository) ListActive(ctx context.Context, limit, offset int) ([]Model, error) {
	if f.ListActiveFn != nil {
		return f.ListActiveFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *FakeRepository) SetVoteCounters(ctx context.Context, db bun.IDB, modelID, activeVotes, totalVotes int64) error {
	if f.SetVoteCountersFn != nil {
		return f.SetVoteCountersFn(ctx, db, modelID, activeVotes, totalVotes)
	}
	return nil
}

func (f *FakeRepository) IncrementContestsJoined(ctx context.Context, modelID int64) error {
	if f.IncrementContestsJoinedFn != nil {
		return f.IncrementContestsJoinedFn(ctx, modelID)
	}
	return nil
}

func (f *FakeRepository) RecordContestWin(ctx context.Context, db bun.IDB, modelID int64) error {
	if f.RecordContestWinFn != nil {
		return f.RecordContestWinFn(ctx, db, modelID)
	}
	return nil
}

var _ Repository = (*FakeRepository)(nil)
