package modeldb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrNotFound      = errors.New("model not found")
	ErrProfileExists = errors.New("user already has a model profile")
)

// Repository defines model-profile data operations. Vote-counter mutations are
// reserved for the tally engine and winner determination.
type Repository interface {
	CreateModel(ctx context.Context, model *Model) error
	GetModelByID(ctx context.Context, id int64) (*Model, error)
	GetModelByUserUUID(ctx context.Context, userUUID uuid.UUID) (*Model, error)
	UpdateProfile(ctx context.Context, model *Model) error
	ListActive(ctx context.Context, limit, offset int) ([]Model, error)

	SetVoteCounters(ctx context.Context, db bun.IDB, modelID, activeVotes, totalVotes int64) error
	IncrementContestsJoined(ctx context.Context, modelID int64) error
	RecordContestWin(ctx context.Context, db bun.IDB, modelID int64) error
}

var _ Repository = (*ModelDBImpl)(nil)
