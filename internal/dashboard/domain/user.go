package domain

import "time"

// Profile is the identity blob returned by the banking provider. It is stored
// verbatim on the user record and echoed back to the front end.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// User is an identity record created on first successful OAuth callback for a
// given provider email. Username is the provider email and is unique. The
// password hash is an opaque placeholder since OAuth users have no local
// credential.
type User struct {
	ID             int64
	Username       string
	PasswordHash   string // argon2id encoded placeholder
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt *time.Time
	Profile        Profile
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TokenExpired reports whether the stored provider access token has expired.
// A user with no recorded expiry is treated as expired so the first dashboard
// call after a partial write forces a refresh rather than a doomed fetch.
func (u User) TokenExpired(now time.Time) bool {
	if u.TokenExpiresAt == nil {
		return true
	}
	return !u.TokenExpiresAt.After(now)
}

// TokenUpdate is the atomic all-or-nothing mutation applied to a user record
// on every code exchange or refresh.
type TokenUpdate struct {
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt time.Time
	Profile        *Profile // nil leaves the stored profile untouched
}
