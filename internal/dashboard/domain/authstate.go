package domain

import "time"

// AuthState is a one-time CSRF nonce registered before the browser is sent to
// the provider's authorize endpoint. Valid for consumption exactly once.
type AuthState struct {
	State     string
	CreatedAt time.Time
}
