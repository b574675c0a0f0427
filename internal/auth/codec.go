// Package auth issues and verifies the bearer tokens presented on
// mutating requests. Token creation sits behind TokenCodec so the
// legacy unsigned encoding and the signed JWT encoding are
// interchangeable without touching callers.
package auth

import (
	"errors"
	"time"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Claims struct {
	UserID    string
	Username  string
	ExpiresAt time.Time
}

type TokenCodec interface {
	// Issue mints a token of the given kind for the user and returns
	// it with its expiry.
	Issue(userID, username string, kind Kind) (string, time.Time, error)

	// Verify decodes and validates a token. It returns ErrTokenExpired
	// for a well-formed token past its expiry and ErrTokenInvalid for
	// anything else that fails.
	Verify(token string, kind Kind) (*Claims, error)
}
