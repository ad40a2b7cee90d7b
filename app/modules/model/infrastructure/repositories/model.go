package modeldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ModelDBImpl is a repository for model-profile data operations.
type ModelDBImpl struct {
	DB *bun.DB
}

// CreateModel creates a model profile. One per user account.
func (db *ModelDBImpl) CreateModel(ctx context.Context, model *Model) error {
	_, err := db.DB.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrProfileExists
		}
		return fmt.Errorf("failed to create model: %w", err)
	}
	return nil
}

// GetModelByID retrieves a model by primary key.
func (db *ModelDBImpl) GetModelByID(ctx context.Context, id int64) (*Model, error) {
	model := &Model{}
	err := db.DB.NewSelect().Model(model).Where("m.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model, nil
}

// GetModelByUserUUID retrieves the model profile owned by a user account.
func (db *ModelDBImpl) GetModelByUserUUID(ctx context.Context, userUUID uuid.UUID) (*Model, error) {
	model := &Model{}
	err := db.DB.NewSelect().Model(model).Where("user_uuid = ?", userUUID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model, nil
}

// UpdateProfile updates the mutable profile fields.
func (db *ModelDBImpl) UpdateProfile(ctx context.Context, model *Model) error {
	result, err := db.DB.NewUpdate().
		Model(model).
		Column("display_name", "stage_name", "bio", "avatar_url", "active").
		Set("updated_at = now()").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update model profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns active model profiles ordered by total votes.
func (db *ModelDBImpl) ListActive(ctx context.Context, limit, offset int) ([]Model, error) {
	var models []Model
	err := db.DB.NewSelect().
		Model(&models).
		Where("active = true").
		OrderExpr("total_votes DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return models, nil
}

// SetVoteCounters writes the recomputed aggregate counters for a model.
// totalVotes is the ledger sum; off-ledger bonus credits are added on top so a
// recompute never erases them. The tally engine passes its own transaction
// handle.
func (db *ModelDBImpl) SetVoteCounters(ctx context.Context, idb bun.IDB, modelID, activeVotes, totalVotes int64) error {
	if idb == nil {
		idb = db.DB
	}
	_, err := idb.NewUpdate().
		Model((*Model)(nil)).
		Set("active_contest_votes = ?", activeVotes).
		Set("total_votes = ? + bonus_votes", totalVotes).
		Set("updated_at = now()").
		Where("id = ?", modelID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set vote counters: %w", err)
	}
	return nil
}

// IncrementContestsJoined bumps the joined counter when an entry is submitted.
func (db *ModelDBImpl) IncrementContestsJoined(ctx context.Context, modelID int64) error {
	_, err := db.DB.NewUpdate().
		Model((*Model)(nil)).
		Set("contests_joined = contests_joined + 1").
		Set("updated_at = now()").
		Where("id = ?", modelID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment contests joined: %w", err)
	}
	return nil
}

// RecordContestWin bumps the won counter and zeroes the active-contest votes,
// preparing the model for future contests.
func (db *ModelDBImpl) RecordContestWin(ctx context.Context, idb bun.IDB, modelID int64) error {
	if idb == nil {
		idb = db.DB
	}
	_, err := idb.NewUpdate().
		Model((*Model)(nil)).
		Set("contests_won = contests_won + 1").
		Set("active_contest_votes = 0").
		Set("updated_at = now()").
		Where("id = ?", modelID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record contest win: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
