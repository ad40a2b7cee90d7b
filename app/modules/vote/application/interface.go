package voteservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	contestservice "github.com/runway-club/votewalk/app/modules/contest/application"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
)

// VoteStatus tells a caller whether their voter key already holds a ballot in
// a contest.
type VoteStatus struct {
	HasVoted bool       `json:"has_voted"`
	EntryID  *int64     `json:"entry_id,omitempty"`
	ModelID  *int64     `json:"model_id,omitempty"`
	VotedAt  *time.Time `json:"voted_at,omitempty"`
}

// DuplicateVoteError reports a repeated ballot. SameModel distinguishes
// re-voting the already-backed model from trying to switch models.
type DuplicateVoteError struct {
	SameModel    bool
	VotedModelID int64
}

func (e *DuplicateVoteError) Error() string {
	if e.SameModel {
		return fmt.Sprintf("already voted for model %d in this contest", e.VotedModelID)
	}
	return fmt.Sprintf("already voted in this contest (for model %d)", e.VotedModelID)
}

// Service defines the vote ledger and tally engine operations. It also serves
// the contest module's daily tally reads.
type Service interface {
	contestservice.TallyReader

	CastVote(ctx context.Context, contestID, modelID int64, voterKey string, voteType votedb.VoteType, weight int) (*votedb.Vote, error)
	RecomputeContestTallies(ctx context.Context, contestID int64) error
	GetVoteStatus(ctx context.Context, contestID int64, voterKey string) (*VoteStatus, error)
	ActiveLeaderboard(ctx context.Context) ([]votedb.LeaderboardRow, error)

	// CreditBonusVotes converts a completed package purchase into ballots
	// for the buyer's approved entry in the active contest.
	CreditBonusVotes(ctx context.Context, purchaseUUID, buyerUUID uuid.UUID, packageID, votes int64, voteType votedb.VoteType) error
}
