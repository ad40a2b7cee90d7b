package modeldb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Model is a contest participant profile, owned by exactly one user account.
type Model struct {
	bun.BaseModel `bun:"table:models,alias:m"`

	ID                 int64     `bun:"id,pk,autoincrement" json:"id"`
	UUID               uuid.UUID `bun:"uuid,unique,notnull,default:gen_random_uuid()" json:"uuid"`
	UserUUID           uuid.UUID `bun:"user_uuid,unique,notnull" json:"user_uuid"`
	DisplayName        string    `bun:"display_name,notnull" json:"display_name"`
	StageName          *string   `bun:"stage_name,nullzero" json:"stage_name,omitempty"`
	Bio                *string   `bun:"bio,nullzero" json:"bio,omitempty"`
	AvatarURL          *string   `bun:"avatar_url,nullzero" json:"avatar_url,omitempty"`
	TotalVotes         int64     `bun:"total_votes,notnull,default:0" json:"total_votes"`
	BonusVotes         int64     `bun:"bonus_votes,notnull,default:0" json:"bonus_votes"`
	ActiveContestVotes int64     `bun:"active_contest_votes,notnull,default:0" json:"active_contest_votes"`
	ContestsJoined     int       `bun:"contests_joined,notnull,default:0" json:"contests_joined"`
	ContestsWon        int       `bun:"contests_won,notnull,default:0" json:"contests_won"`
	Active             bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
