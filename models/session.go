package models

import "time"

// SessionUser is the identity carried by a session.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Session is the authenticated identity for the current caller.
// It is derived from a verified access token and never persisted here.
type Session struct {
	AccessToken string      `json:"access_token"`
	User        SessionUser `json:"user"`
	ExpiresAt   time.Time   `json:"expires_at"`
}
