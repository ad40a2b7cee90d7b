package userdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is a closed enumeration of account roles.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User represents an account. Model profiles hang off users 1:1.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	UUID         uuid.UUID `bun:"uuid,unique,notnull,default:gen_random_uuid()" json:"uuid"`
	Email        string    `bun:"email,unique,notnull" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         UserRole  `bun:"role,notnull,default:'user'" json:"role"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Session is a server-side record of an issued refresh token, so logout can
// revoke it before expiry.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	TokenHash string     `bun:"token_hash,pk"`
	UserUUID  uuid.UUID  `bun:"user_uuid,notnull"`
	ExpiresAt time.Time  `bun:"expires_at,notnull"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	Revoked   bool       `bun:"revoked,notnull,default:false"`
	RevokedAt *time.Time `bun:"revoked_at"`
	IPAddress *string    `bun:"ip_address,nullzero"`
}
