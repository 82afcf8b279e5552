package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// TokenPair is the access/refresh credential pair handed to the client.
// It is never persisted; the server keeps no session state.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserOverview is the user row joined with profile basics, for GET /me.
type UserOverview struct {
	ID        string
	Email     string
	FullName  *string
	Location  *string
	CreatedAt time.Time
	LastLogin *time.Time
}
