package models

import "time"

// Session is the identity decoded from the credential payload. It is a
// display hint only: the remote API verifies the credential on every call.
type Session struct {
	Subject   string
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
