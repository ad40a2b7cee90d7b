package entrydb

import (
	"time"

	"github.com/uptrace/bun"
)

// EntryStatus is a closed enumeration of moderation states.
type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
)

func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ContestEntry is a model's single submission to one contest. Only approved
// entries are visible to voters and count toward tallies.
type ContestEntry struct {
	bun.BaseModel `bun:"table:contest_entries,alias:ce"`

	ID          int64       `bun:"id,pk,autoincrement" json:"id"`
	ContestID   int64       `bun:"contest_id,notnull" json:"contest_id"`
	ModelID     int64       `bun:"model_id,notnull" json:"model_id"`
	Title       string      `bun:"title,notnull" json:"title"`
	Description *string     `bun:"description,nullzero" json:"description,omitempty"`
	PhotoURL    string      `bun:"photo_url,notnull" json:"photo_url"`
	Votes       int64       `bun:"votes,notnull,default:0" json:"votes"`
	Ranking     *int        `bun:"ranking,nullzero" json:"ranking,omitempty"`
	Status      EntryStatus `bun:"status,notnull,default:'pending'" json:"status"`
	SubmittedAt time.Time   `bun:"submitted_at,notnull,default:current_timestamp" json:"submitted_at"`
	ReviewedAt  *time.Time  `bun:"reviewed_at,nullzero" json:"reviewed_at,omitempty"`
}
