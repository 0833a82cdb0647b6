package service

import (
	"errors"

	"github.com/centsible/centsible/internal/dashboard/provider"
)

var (
	// ErrInvalidState rejects a callback whose state was never registered or
	// was already consumed.
	ErrInvalidState = errors.New("invalid_state")

	// ErrAuthenticationFailed covers a callback that passed state
	// verification but failed at the provider (exchange or profile fetch).
	ErrAuthenticationFailed = errors.New("authentication_failed")

	// ErrUnauthorized means there is no usable session behind the request.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDataRetrievalFailed means at least one of the dashboard fetches
	// failed; the aggregate is all-or-nothing.
	ErrDataRetrievalFailed = errors.New("data_retrieval_failed")
)

// Provider sentinels re-exported so handlers dispatch on one package.
var (
	ErrReauthenticationRequired = provider.ErrReauthenticationRequired
	ErrUpstreamAuth             = provider.ErrUpstreamAuth
	ErrUpstreamTimeout          = provider.ErrUpstreamTimeout
)
