package contestdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ContestDBImpl is a repository for contest data operations.
type ContestDBImpl struct {
	DB *bun.DB
}

// CreateContest inserts a contest. New contests always start upcoming.
func (db *ContestDBImpl) CreateContest(ctx context.Context, contest *Contest) error {
	contest.Status = StatusUpcoming
	_, err := db.DB.NewInsert().Model(contest).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create contest: %w", err)
	}
	return nil
}

// GetContestByID retrieves a contest by primary key.
func (db *ContestDBImpl) GetContestByID(ctx context.Context, id int64) (*Contest, error) {
	contest := &Contest{}
	err := db.DB.NewSelect().Model(contest).Where("c.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contest, nil
}

// GetActiveContest returns the single active contest, or ErrNotFound.
func (db *ContestDBImpl) GetActiveContest(ctx context.Context) (*Contest, error) {
	contest := &Contest{}
	err := db.DB.NewSelect().
		Model(contest).
		Where("status = ?", StatusActive).
		OrderExpr("id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contest, nil
}

// ListContests returns contests, optionally filtered by status, newest first.
func (db *ContestDBImpl) ListContests(ctx context.Context, status ContestStatus) ([]Contest, error) {
	var contests []Contest
	q := db.DB.NewSelect().Model(&contests).OrderExpr("starts_at DESC, id DESC")
	if status != "" {
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid contest status: %s", status)
		}
		q = q.Where("status = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	return contests, nil
}

// UpdateContest updates the editable fields.
func (db *ContestDBImpl) UpdateContest(ctx context.Context, contest *Contest) error {
	result, err := db.DB.NewUpdate().
		Model(contest).
		Column("title", "description", "starts_at", "ends_at", "prize_amount", "prize_currency", "banner_url").
		Set("updated_at = now()").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update contest: %w", err)
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

// DeleteContest removes a contest; entries cascade at the schema level.
func (db *ContestDBImpl) DeleteContest(ctx context.Context, id int64) error {
	result, err := db.DB.NewDelete().Model((*Contest)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after delete: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Activate transitions the target contest to active and, as the same logical
// step, completes every other active contest. After commit the set of active
// contests has cardinality 1.
func (db *ContestDBImpl) Activate(ctx context.Context, id int64) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	contest := &Contest{}
	err = tx.NewSelect().Model(contest).Where("c.id = ?", id).For("UPDATE").Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load contest: %w", err)
	}
	if contest.Status == StatusCompleted {
		return ErrInvalidTransition
	}

	_, err = tx.NewUpdate().
		Model((*Contest)(nil)).
		Set("status = ?", StatusCompleted).
		Set("updated_at = now()").
		Where("status = ? AND id != ?", StatusActive, id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to complete other active contests: %w", err)
	}

	_, err = tx.NewUpdate().
		Model((*Contest)(nil)).
		Set("status = ?", StatusActive).
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to activate contest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Complete transitions a contest to completed.
func (db *ContestDBImpl) Complete(ctx context.Context, id int64) error {
	result, err := db.DB.NewUpdate().
		Model((*Contest)(nil)).
		Set("status = ?", StatusCompleted).
		Set("updated_at = now()").
		Where("id = ? AND status != ?", id, StatusCompleted).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to complete contest: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rowsAffected == 0 {
		// Either missing or already completed; distinguish for the caller.
		if _, err := db.GetContestByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidTransition
	}
	return nil
}

// CompleteExpired transitions every contest whose end date has passed and is
// not yet completed, returning the contests it touched.
func (db *ContestDBImpl) CompleteExpired(ctx context.Context) ([]Contest, error) {
	var completed []Contest
	err := db.DB.NewUpdate().
		Model(&completed).
		Set("status = ?", StatusCompleted).
		Set("updated_at = now()").
		Where("ends_at < now() AND status != ?", StatusCompleted).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to complete expired contests: %w", err)
	}
	return completed, nil
}

// AttachWinner records the winning model/entry pair and its vote count.
func (db *ContestDBImpl) AttachWinner(ctx context.Context, idb bun.IDB, contestID, modelID, entryID, votes int64) error {
	if idb == nil {
		idb = db.DB
	}
	result, err := idb.NewUpdate().
		Model((*Contest)(nil)).
		Set("winner_model_id = ?", modelID).
		Set("winner_entry_id = ?", entryID).
		Set("winning_votes = ?", votes).
		Set("updated_at = now()").
		Where("id = ? AND status = ?", contestID, StatusCompleted).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to attach winner: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// MarkAnnounced flags the winner as publicly announced.
func (db *ContestDBImpl) MarkAnnounced(ctx context.Context, idb bun.IDB, contestID int64) error {
	if idb == nil {
		idb = db.DB
	}
	_, err := idb.NewUpdate().
		Model((*Contest)(nil)).
		Set("announced = true").
		Set("updated_at = now()").
		Where("id = ?", contestID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark contest announced: %w", err)
	}
	return nil
}

// RunInTx runs fn inside a transaction.
func (db *ContestDBImpl) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
