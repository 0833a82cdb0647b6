package provider

import "errors"

var (
	// ErrUpstreamAuth covers provider rejections that are not the user's
	// fault: bad client credentials, malformed exchange, 5xx from the token
	// endpoint.
	ErrUpstreamAuth = errors.New("provider: upstream authentication failed")

	// ErrReauthenticationRequired means the stored grant is dead
	// (invalid_grant on refresh); the user has to log in again.
	ErrReauthenticationRequired = errors.New("provider: reauthentication required")

	// ErrUpstreamTimeout is returned when a provider call exceeds the
	// configured request timeout.
	ErrUpstreamTimeout = errors.New("provider: upstream timeout")
)
