package models

import "time"

// LoginResponse is returned after a successful admin login.
type LoginResponse struct {
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// MeResponse reports whether the caller currently holds a valid admin session.
type MeResponse struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}
