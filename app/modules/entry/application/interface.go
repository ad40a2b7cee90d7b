package entryservice

import (
	"context"

	"github.com/google/uuid"

	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
)

// SubmitInput carries a model's contest submission. PhotoURL is set by the
// handler after the upload is stored.
type SubmitInput struct {
	Title       string
	Description *string
	PhotoURL    string
}

// Service defines contest-entry operations.
type Service interface {
	Submit(ctx context.Context, userUUID uuid.UUID, contestID int64, input SubmitInput) (*entrydb.ContestEntry, error)
	GetEntry(ctx context.Context, entryID int64) (*entrydb.ContestEntry, error)
	ListEntries(ctx context.Context, contestID int64, includePending bool) ([]entrydb.ContestEntry, error)
	Approve(ctx context.Context, entryID int64) (*entrydb.ContestEntry, error)
	Reject(ctx context.Context, entryID int64) (*entrydb.ContestEntry, error)
}
