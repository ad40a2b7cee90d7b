package contestdb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

var (
	ErrNotFound          = errors.New("contest not found")
	ErrInvalidTransition = errors.New("invalid contest status transition")
)

// Repository defines contest data operations.
type Repository interface {
	CreateContest(ctx context.Context, contest *Contest) error
	GetContestByID(ctx context.Context, id int64) (*Contest, error)
	GetActiveContest(ctx context.Context) (*Contest, error)
	ListContests(ctx context.Context, status ContestStatus) ([]Contest, error)
	UpdateContest(ctx context.Context, contest *Contest) error
	DeleteContest(ctx context.Context, id int64) error

	// Activate transitions the target to active and completes every other
	// active contest, in one transaction.
	Activate(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	CompleteExpired(ctx context.Context) ([]Contest, error)

	AttachWinner(ctx context.Context, db bun.IDB, contestID, modelID, entryID, votes int64) error
	MarkAnnounced(ctx context.Context, db bun.IDB, contestID int64) error

	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

var _ Repository = (*ContestDBImpl)(nil)
