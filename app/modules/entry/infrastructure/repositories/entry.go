package entrydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// EntryDBImpl is a repository for contest-entry data operations.
type EntryDBImpl struct {
	DB *bun.DB
}

// CreateEntry inserts a submission. At most one entry per (model, contest).
func (db *EntryDBImpl) CreateEntry(ctx context.Context, entry *ContestEntry) error {
	_, err := db.DB.NewInsert().Model(entry).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// GetEntryByID retrieves an entry by primary key.
func (db *EntryDBImpl) GetEntryByID(ctx context.Context, id int64) (*ContestEntry, error) {
	entry := &ContestEntry{}
	err := db.DB.NewSelect().Model(entry).Where("ce.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// GetApprovedEntry retrieves a model's approved entry in a contest.
func (db *EntryDBImpl) GetApprovedEntry(ctx context.Context, contestID, modelID int64) (*ContestEntry, error) {
	entry := &ContestEntry{}
	err := db.DB.NewSelect().
		Model(entry).
		Where("contest_id = ? AND model_id = ? AND status = ?", contestID, modelID, StatusApproved).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListByContest returns a contest's entries. When approvedOnly is set, pending
// and rejected submissions are filtered out (the voter-facing view).
func (db *EntryDBImpl) ListByContest(ctx context.Context, contestID int64, approvedOnly bool) ([]ContestEntry, error) {
	var entries []ContestEntry
	q := db.DB.NewSelect().
		Model(&entries).
		Where("contest_id = ?", contestID).
		OrderExpr("votes DESC, id ASC")
	if approvedOnly {
		q = q.Where("status = ?", StatusApproved)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// SetStatus transitions an entry's moderation state and stamps reviewed_at.
func (db *EntryDBImpl) SetStatus(ctx context.Context, entryID int64, status EntryStatus) (*ContestEntry, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid entry status: %s", status)
	}

	entry := &ContestEntry{}
	err := db.DB.NewUpdate().
		Model(entry).
		Set("status = ?", status).
		Set("reviewed_at = now()").
		Where("id = ?", entryID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set entry status: %w", err)
	}
	return entry, nil
}

// TopApproved returns a contest's approved entries ordered by vote count
// descending, entry id ascending as the deterministic tie-break.
func (db *EntryDBImpl) TopApproved(ctx context.Context, contestID int64) ([]ContestEntry, error) {
	var entries []ContestEntry
	err := db.DB.NewSelect().
		Model(&entries).
		Where("contest_id = ? AND status = ?", contestID, StatusApproved).
		OrderExpr("votes DESC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rank entries: %w", err)
	}
	return entries, nil
}

// UpdateVotes writes a recomputed tally for one entry.
func (db *EntryDBImpl) UpdateVotes(ctx context.Context, idb bun.IDB, entryID, votes int64) error {
	if idb == nil {
		idb = db.DB
	}
	_, err := idb.NewUpdate().
		Model((*ContestEntry)(nil)).
		Set("votes = ?", votes).
		Where("id = ?", entryID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update entry votes: %w", err)
	}
	return nil
}

// ResetContestVotes zeroes every entry tally in a contest (archival reset
// after a winner is announced).
func (db *EntryDBImpl) ResetContestVotes(ctx context.Context, idb bun.IDB, contestID int64) error {
	if idb == nil {
		idb = db.DB
	}
	_, err := idb.NewUpdate().
		Model((*ContestEntry)(nil)).
		Set("votes = 0").
		Where("contest_id = ?", contestID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset contest votes: %w", err)
	}
	return nil
}

// AssignRankings writes 1..n rankings over a contest's approved entries by
// tally order.
func (db *EntryDBImpl) AssignRankings(ctx context.Context, idb bun.IDB, contestID int64) error {
	if idb == nil {
		idb = db.DB
	}
	_, err := idb.NewRaw(`
		UPDATE contest_entries ce SET ranking = ranked.rank
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY votes DESC, id ASC) AS rank
			FROM contest_entries
			WHERE contest_id = ? AND status = 'approved'
		) ranked
		WHERE ce.id = ranked.id
	`, contestID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to assign rankings: %w", err)
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
