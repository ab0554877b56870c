package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionSlot is the name of the single slot a session holds.
const SessionSlot = "userData"

// Session is the server-side view of a logged-in browser.
type Session struct {
	ID        string      `json:"id"`
	Profile   UserProfile `json:"profile"`
	CreatedAt time.Time   `json:"created_at"`
}

// SessionClaims is the payload of the signed session cookie. The JWT ID carries the
// session id; nothing about the profile leaves the server.
type SessionClaims struct {
	jwt.RegisteredClaims
}
