package contestservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

var (
	ErrContestNotCompleted = errors.New("contest is not completed yet")
	ErrNoApprovedEntries   = errors.New("contest has no approved entries")
	ErrTieUnresolved       = errors.New("top entries are tied, pick a winner explicitly")
	ErrAlreadyAnnounced    = errors.New("contest winner already announced")
	ErrEntryNotInContest   = errors.New("entry does not belong to this contest")
)

// DetermineWinner resolves a completed contest from the approved entry
// tallies. A sole leader is recorded on the contest and credited to the model;
// a tie returns the candidates and records nothing; no approved entries yields
// an empty result. Calling it again after a winner is recorded returns the
// recorded winner without touching counters.
func (s *ContestService) DetermineWinner(ctx context.Context, contestID int64) (*WinnerResult, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.DetermineWinner")
	defer span.End()

	contest, err := s.repo.GetContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != contestdb.StatusCompleted {
		return nil, ErrContestNotCompleted
	}

	if contest.WinnerEntryID != nil {
		recorded, err := s.entryRepo.GetEntryByID(ctx, *contest.WinnerEntryID)
		if err != nil {
			return nil, err
		}
		return &WinnerResult{
			ContestID:    contestID,
			Winner:       recorded,
			WinningVotes: contest.WinningVotes,
		}, nil
	}

	winner, tied, err := s.pickLeader(ctx, contestID)
	if err != nil {
		if errors.Is(err, ErrNoApprovedEntries) {
			return &WinnerResult{ContestID: contestID}, nil
		}
		return nil, err
	}
	if winner == nil {
		return &WinnerResult{
			ContestID:      contestID,
			TiedCandidates: tied,
			WinningVotes:   tied[0].Votes,
		}, nil
	}

	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := s.repo.AttachWinner(ctx, tx, contestID, winner.ModelID, winner.ID, winner.Votes); err != nil {
			return err
		}
		return s.modelRepo.RecordContestWin(ctx, tx, winner.ModelID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record winner: %w", err)
	}

	s.metrics.WinnersDetermined.Inc()
	s.logger.InfoContext(ctx, "Winner determined",
		attr.Int64("contest_id", contestID),
		attr.Int64("entry_id", winner.ID),
		attr.Int64("model_id", winner.ModelID),
		attr.Int64("votes", winner.Votes),
	)
	return &WinnerResult{
		ContestID:    contestID,
		Winner:       winner,
		WinningVotes: winner.Votes,
	}, nil
}

// AnnounceWinner finalizes a completed contest. With entryID nil the winner is
// computed from tallies; a tie then aborts. With entryID set, that approved
// entry wins regardless of tallies (manual tie resolution). Final rankings are
// frozen and the running entry tallies archived in the same transaction.
func (s *ContestService) AnnounceWinner(ctx context.Context, contestID int64, entryID *int64) (*WinnerResult, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.AnnounceWinner")
	defer span.End()

	contest, err := s.repo.GetContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != contestdb.StatusCompleted {
		return nil, ErrContestNotCompleted
	}
	if contest.Announced {
		return nil, ErrAlreadyAnnounced
	}

	var winner *entrydb.ContestEntry
	if entryID != nil {
		entry, err := s.entryRepo.GetEntryByID(ctx, *entryID)
		if err != nil {
			return nil, err
		}
		if entry.ContestID != contestID {
			return nil, ErrEntryNotInContest
		}
		if entry.Status != entrydb.StatusApproved {
			return nil, ErrNoApprovedEntries
		}
		winner = entry
	} else {
		sole, _, err := s.pickLeader(ctx, contestID)
		if err != nil {
			return nil, err
		}
		if sole == nil {
			return nil, ErrTieUnresolved
		}
		winner = sole
	}

	// Skip the win credit if DetermineWinner already recorded this winner.
	alreadyRecorded := contest.WinnerEntryID != nil && *contest.WinnerEntryID == winner.ID

	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := s.repo.AttachWinner(ctx, tx, contestID, winner.ModelID, winner.ID, winner.Votes); err != nil {
			return err
		}
		if !alreadyRecorded {
			if err := s.modelRepo.RecordContestWin(ctx, tx, winner.ModelID); err != nil {
				return err
			}
		}
		if err := s.entryRepo.AssignRankings(ctx, tx, contestID); err != nil {
			return err
		}
		if err := s.entryRepo.ResetContestVotes(ctx, tx, contestID); err != nil {
			return err
		}
		if err := s.repo.MarkAnnounced(ctx, tx, contestID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to announce winner: %w", err)
	}

	s.metrics.WinnersDetermined.Inc()
	s.logger.InfoContext(ctx, "Winner announced",
		attr.Int64("contest_id", contestID),
		attr.Int64("entry_id", winner.ID),
		attr.Int64("model_id", winner.ModelID),
	)
	return &WinnerResult{
		ContestID:    contestID,
		Winner:       winner,
		WinningVotes: winner.Votes,
	}, nil
}

// pickLeader returns the sole top entry, or nil plus the tied set. Ordering
// comes from TopApproved: votes descending, then entry id ascending.
func (s *ContestService) pickLeader(ctx context.Context, contestID int64) (*entrydb.ContestEntry, []entrydb.ContestEntry, error) {
	entries, err := s.entryRepo.TopApproved(ctx, contestID)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, ErrNoApprovedEntries
	}

	tied := []entrydb.ContestEntry{entries[0]}
	for _, e := range entries[1:] {
		if e.Votes != entries[0].Votes {
			break
		}
		tied = append(tied, e)
	}
	if len(tied) > 1 {
		return nil, tied, nil
	}
	return &entries[0], nil, nil
}
