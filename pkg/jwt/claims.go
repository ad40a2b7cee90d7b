package jwt

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims carried by both access and refresh tokens.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	TokenKind string `json:"kind"` // "access" | "refresh"
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)
