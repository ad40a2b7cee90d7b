package userdb

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrSessionRevoked = errors.New("session revoked")
)
