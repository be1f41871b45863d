package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the single current authenticated identity.
type Session struct {
	ID        string    `json:"id"`
	User      UserInfo  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// JWTClaims is the payload of a session token. No expiry is issued.
type JWTClaims struct {
	SessionID string   `json:"sid"`
	UserID    string   `json:"user_id"`
	Role      UserRole `json:"role"`
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Class     string   `json:"kelas,omitempty"`
	jwt.RegisteredClaims
}

// LoginResult returns the issued token and identity.
type LoginResult struct {
	Token    string    `json:"token"`
	User     UserInfo  `json:"user"`
	Home     string    `json:"home"`
	IssuedAt time.Time `json:"issued_at"`
}

// Identity rebuilds the session identity carried by the token.
func (c *JWTClaims) Identity() UserInfo {
	return UserInfo{ID: c.UserID, Name: c.Name, Username: c.Username, Role: c.Role, Class: StringPtr(c.Class)}
}
