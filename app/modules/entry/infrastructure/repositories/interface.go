package entrydb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

var (
	ErrNotFound       = errors.New("entry not found")
	ErrDuplicateEntry = errors.New("model already entered this contest")
)

// Repository defines contest-entry data operations.
type Repository interface {
	CreateEntry(ctx context.Context, entry *ContestEntry) error
	GetEntryByID(ctx context.Context, id int64) (*ContestEntry, error)
	GetApprovedEntry(ctx context.Context, contestID, modelID int64) (*ContestEntry, error)
	ListByContest(ctx context.Context, contestID int64, approvedOnly bool) ([]ContestEntry, error)
	SetStatus(ctx context.Context, entryID int64, status EntryStatus) (*ContestEntry, error)
	TopApproved(ctx context.Context, contestID int64) ([]ContestEntry, error)

	UpdateVotes(ctx context.Context, db bun.IDB, entryID, votes int64) error
	ResetContestVotes(ctx context.Context, db bun.IDB, contestID int64) error
	AssignRankings(ctx context.Context, db bun.IDB, contestID int64) error
}

var _ Repository = (*EntryDBImpl)(nil)
