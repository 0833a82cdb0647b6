package domain

import "time"

// Session is the ephemeral association between a browser and a user, held
// server-side. The browser only ever carries a signed reference to ID.
type Session struct {
	ID        string // ULID
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its fixed TTL.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
