package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload carried by a session token. It mirrors the public
// profile so handlers never need a store lookup to identify the caller; the
// admin flag in particular is read from here, not refreshed per request.
type Claims struct {
	UserID    uuid.UUID `json:"uid"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	BirthDate time.Time `json:"birthDate"`
	Gender    string    `json:"gender"`
	IsAdmin   bool      `json:"isAdmin"`
	jwt.RegisteredClaims
}

// SessionDuration is the fixed validity window of a session token and of the
// cookie that carries it.
const SessionDuration = 24 * time.Hour
