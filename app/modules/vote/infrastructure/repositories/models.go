package votedb

import (
	"time"

	"github.com/uptrace/bun"
)

// VoteType is a closed enumeration of ballot kinds. Free votes come from
// visitors; power and vip ballots are credited from purchased packages.
type VoteType string

const (
	TypeFree  VoteType = "free"
	TypePower VoteType = "power"
	TypeVIP   VoteType = "vip"
)

func (t VoteType) IsValid() bool {
	switch t {
	case TypeFree, TypePower, TypeVIP:
		return true
	}
	return false
}

// Vote is one immutable ballot for a contest entry. VoterKey is the caller IP
// for free votes and "pkg:<purchase uuid>" for credited package ballots.
type Vote struct {
	bun.BaseModel `bun:"table:votes,alias:v"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	EntryID   int64     `bun:"entry_id,notnull" json:"entry_id"`
	VoterKey  string    `bun:"voter_key,notnull" json:"voter_key"`
	VoteType  VoteType  `bun:"vote_type,notnull,default:'free'" json:"vote_type"`
	Weight    int       `bun:"weight,notnull,default:1" json:"weight"`
	PackageID *int64    `bun:"package_id,nullzero" json:"package_id,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// EntryTally is a recomputed ballot count for one approved entry.
type EntryTally struct {
	EntryID int64 `bun:"entry_id"`
	ModelID int64 `bun:"model_id"`
	Votes   int64 `bun:"votes"`
}

// ModelTotals carries a model's recomputed aggregate counters.
type ModelTotals struct {
	ActiveVotes int64 `bun:"active_votes"`
	TotalVotes  int64 `bun:"total_votes"`
}

// CastRecord describes the ballot a voter already holds in a contest.
type CastRecord struct {
	VoteID    int64     `bun:"vote_id"`
	EntryID   int64     `bun:"entry_id"`
	ModelID   int64     `bun:"model_id"`
	CreatedAt time.Time `bun:"created_at"`
}

// LeaderboardRow is one model's aggregate standing across active contests.
type LeaderboardRow struct {
	ModelID     int64   `bun:"model_id" json:"model_id"`
	DisplayName string  `bun:"display_name" json:"display_name"`
	AvatarURL   *string `bun:"avatar_url" json:"avatar_url,omitempty"`
	Votes       int64   `bun:"votes" json:"votes"`
}

// DayCount is one day's ballot count within a contest.
type DayCount struct {
	Day   time.Time `bun:"day"`
	Count int64     `bun:"count"`
}
