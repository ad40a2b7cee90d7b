package contestdb

import (
	"time"

	"github.com/uptrace/bun"
)

// ContestStatus is a closed enumeration of lifecycle states.
type ContestStatus string

const (
	StatusUpcoming  ContestStatus = "upcoming"
	StatusActive    ContestStatus = "active"
	StatusCompleted ContestStatus = "completed"
)

func (s ContestStatus) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Contest is a time-boxed competition. At most one contest holds status
// "active" at any time; Activate enforces that inside one transaction.
type Contest struct {
	bun.BaseModel `bun:"table:contests,alias:c"`

	ID            int64         `bun:"id,pk,autoincrement" json:"id"`
	Title         string        `bun:"title,notnull" json:"title"`
	Description   *string       `bun:"description,nullzero" json:"description,omitempty"`
	StartsAt      time.Time     `bun:"starts_at,notnull" json:"starts_at"`
	EndsAt        time.Time     `bun:"ends_at,notnull" json:"ends_at"`
	PrizeAmount   int64         `bun:"prize_amount,notnull,default:0" json:"prize_amount"` // cents
	PrizeCurrency string        `bun:"prize_currency,notnull,default:'USD'" json:"prize_currency"`
	BannerURL     *string       `bun:"banner_url,nullzero" json:"banner_url,omitempty"`
	Status        ContestStatus `bun:"status,notnull,default:'upcoming'" json:"status"`
	WinnerModelID *int64        `bun:"winner_model_id,nullzero" json:"winner_model_id,omitempty"`
	WinnerEntryID *int64        `bun:"winner_entry_id,nullzero" json:"winner_entry_id,omitempty"`
	WinningVotes  int64         `bun:"winning_votes,notnull,default:0" json:"winning_votes"`
	Announced     bool          `bun:"announced,notnull,default:false" json:"announced"`
	CreatedAt     time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
