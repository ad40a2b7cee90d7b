package votedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// VoteDBImpl is a repository for the vote ledger.
type VoteDBImpl struct {
	DB *bun.DB
}

// CreateVote inserts one ballot.
func (db *VoteDBImpl) CreateVote(ctx context.Context, vote *Vote) error {
	_, err := db.DB.NewInsert().Model(vote).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// CreateVotes bulk-inserts ballots, used for package credits.
func (db *VoteDBImpl) CreateVotes(ctx context.Context, votes []Vote) error {
	if len(votes) == 0 {
		return nil
	}
	_, err := db.DB.NewInsert().Model(&votes).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert votes: %w", err)
	}
	return nil
}

// FindContestVote returns the ballot a voter key already cast anywhere in the
// contest, joined through entries so the caller learns which model it backed.
func (db *VoteDBImpl) FindContestVote(ctx context.Context, contestID int64, voterKey string) (*CastRecord, error) {
	record := &CastRecord{}
	err := db.DB.NewSelect().
		TableExpr("votes AS v").
		ColumnExpr("v.id AS vote_id, v.entry_id, ce.model_id, v.created_at").
		Join("JOIN contest_entries AS ce ON ce.id = v.entry_id").
		Where("ce.contest_id = ? AND v.voter_key = ?", contestID, voterKey).
		OrderExpr("v.id ASC").
		Limit(1).
		Scan(ctx, record)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contest vote: %w", err)
	}
	return record, nil
}

// TallyContest counts ballots per entry. Only approved entries count their
// ballots; pending and rejected entries come back with a zero count so their
// stale derived counters get overwritten on recompute.
func (db *VoteDBImpl) TallyContest(ctx context.Context, idb bun.IDB, contestID int64) ([]EntryTally, error) {
	if idb == nil {
		idb = db.DB
	}
	var tallies []EntryTally
	err := idb.NewSelect().
		TableExpr("contest_entries AS ce").
		ColumnExpr("ce.id AS entry_id, ce.model_id, COUNT(v.id) FILTER (WHERE ce.status = 'approved') AS votes").
		Join("LEFT JOIN votes AS v ON v.entry_id = ce.id").
		Where("ce.contest_id = ?", contestID).
		GroupExpr("ce.id, ce.model_id").
		Scan(ctx, &tallies)
	if err != nil {
		return nil, fmt.Errorf("failed to tally contest: %w", err)
	}
	return tallies, nil
}

// ModelTotals sums ballots over a model's approved entries, lifetime and
// restricted to active contests.
func (db *VoteDBImpl) ModelTotals(ctx context.Context, idb bun.IDB, modelID int64) (*ModelTotals, error) {
	if idb == nil {
		idb = db.DB
	}
	totals := &ModelTotals{}
	err := idb.NewRaw(`
		SELECT
			COUNT(v.id) AS total_votes,
			COUNT(v.id) FILTER (WHERE c.status = 'active') AS active_votes
		FROM contest_entries ce
		JOIN contests c ON c.id = ce.contest_id
		LEFT JOIN votes v ON v.entry_id = ce.id
		WHERE ce.model_id = ? AND ce.status = 'approved'
	`, modelID).Scan(ctx, totals)
	if err != nil {
		return nil, fmt.Errorf("failed to sum model votes: %w", err)
	}
	return totals, nil
}

// VotesByDay buckets a contest's ballots by calendar day.
func (db *VoteDBImpl) VotesByDay(ctx context.Context, contestID int64) ([]DayCount, error) {
	var days []DayCount
	err := db.DB.NewRaw(`
		SELECT date_trunc('day', v.created_at) AS day, COUNT(*) AS count
		FROM votes v
		JOIN contest_entries ce ON ce.id = v.entry_id
		WHERE ce.contest_id = ?
		GROUP BY day
		ORDER BY day ASC
	`, contestID).Scan(ctx, &days)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket votes by day: %w", err)
	}
	return days, nil
}

// LeaderboardTop ranks models by summed approved-entry ballots across active
// contests. Ties break toward the earlier entry.
func (db *VoteDBImpl) LeaderboardTop(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := db.DB.NewRaw(`
		SELECT m.id AS model_id, m.display_name, m.avatar_url,
			COUNT(v.id) AS votes
		FROM models m
		JOIN contest_entries ce ON ce.model_id = m.id AND ce.status = 'approved'
		JOIN contests c ON c.id = ce.contest_id AND c.status = 'active'
		LEFT JOIN votes v ON v.entry_id = ce.id
		GROUP BY m.id, m.display_name, m.avatar_url
		ORDER BY votes DESC, MIN(ce.id) ASC
		LIMIT ?
	`, limit).Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	return rows, nil
}

// CreditModelTotal credits a model directly, used only when a package credit
// has no approved entry to attach ballots to. The credit lands in bonus_votes
// so recomputes from the ballot ledger preserve it.
func (db *VoteDBImpl) CreditModelTotal(ctx context.Context, modelID, votes int64) error {
	_, err := db.DB.NewRaw(`
		UPDATE models
		SET bonus_votes = bonus_votes + ?,
			total_votes = total_votes + ?,
			updated_at = now()
		WHERE id = ?
	`, votes, votes, modelID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to credit model total: %w", err)
	}
	return nil
}

// RunInTx runs fn inside a transaction.
func (db *VoteDBImpl) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
