package contestservice

import (
	"context"
	"time"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
)

// ContestInput carries the admin-editable contest fields. EndsAt and StartsAt
// accept RFC3339 or a natural-language phrase ("next friday 8pm").
type ContestInput struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	StartsAt      string  `json:"starts_at"`
	EndsAt        string  `json:"ends_at"`
	PrizeAmount   int64   `json:"prize_amount"`
	PrizeCurrency string  `json:"prize_currency"`
	BannerURL     *string `json:"banner_url"`
}

// WinnerResult is the outcome of winner determination. Winner is nil when the
// top tally is tied or no approved entries exist; TiedCandidates then carries
// the entries needing manual resolution.
type WinnerResult struct {
	ContestID      int64                  `json:"contest_id"`
	Winner         *entrydb.ContestEntry  `json:"winner,omitempty"`
	TiedCandidates []entrydb.ContestEntry `json:"tied_candidates,omitempty"`
	WinningVotes   int64                  `json:"winning_votes"`
}

// DayCount is one day's ballot count, for the admin trend chart.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// TallyReader is the slice of the vote ledger the contest module reads.
type TallyReader interface {
	VotesByDay(ctx context.Context, contestID int64) ([]DayCount, error)
}

// Service defines contest lifecycle operations.
type Service interface {
	CreateContest(ctx context.Context, input ContestInput) (*contestdb.Contest, error)
	UpdateContest(ctx context.Context, id int64, input ContestInput) (*contestdb.Contest, error)
	DeleteContest(ctx context.Context, id int64) error
	GetContest(ctx context.Context, id int64) (*contestdb.Contest, error)
	GetActiveContest(ctx context.Context) (*contestdb.Contest, error)
	ListContests(ctx context.Context, status contestdb.ContestStatus) ([]contestdb.Contest, error)

	Activate(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	CompleteExpired(ctx context.Context) ([]contestdb.Contest, error)

	DetermineWinner(ctx context.Context, contestID int64) (*WinnerResult, error)
	AnnounceWinner(ctx context.Context, contestID int64, entryID *int64) (*WinnerResult, error)

	RenderVotesChart(ctx context.Context, contestID int64) ([]byte, error)
	ExportResults(ctx context.Context, contestID int64) ([]byte, error)
}
