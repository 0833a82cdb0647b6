package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/provider"
	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/centsible/centsible/pkg/cryptox"
	"github.com/centsible/centsible/pkg/slogx"
)

// DefaultStateTTL is how long a registered CSRF state stays valid before
// housekeeping evicts it as an abandoned login attempt.
const DefaultStateTTL = 10 * time.Minute

// ProviderClient is the slice of the provider API the auth flow needs.
type ProviderClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (provider.Token, error)
	RefreshToken(ctx context.Context, refreshToken string) (provider.Token, error)
	Profile(ctx context.Context, accessToken string) (provider.Profile, error)
	Accounts(ctx context.Context, accessToken string) ([]provider.Account, error)
	Transactions(ctx context.Context, accessToken string) ([]provider.Transaction, error)
	SpendingCategories(ctx context.Context, accessToken string) ([]provider.SpendingCategory, error)
	UpcomingBills(ctx context.Context, accessToken string) ([]provider.Bill, error)
}

// AuthService drives the Anonymous -> StatePending -> Authenticated flow:
// state registration, callback verification, code exchange, user upsert, and
// session establishment.
type AuthService struct {
	Store    store.Store
	Provider ProviderClient
	Sessions *SessionService
}

// RegisterState records a client-generated CSRF state nonce, moving the flow
// to StatePending. Registering the same value twice is rejected.
func (s *AuthService) RegisterState(ctx context.Context, state string) error {
	state = strings.TrimSpace(state)
	if state == "" {
		return fmt.Errorf("%w: empty state", ErrInvalidState)
	}

	if err := s.Store.AuthStates().PutState(ctx, state, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("%w: state already pending", ErrInvalidState)
		}
		return err
	}
	return nil
}

// BeginLogin is the server-generated variant: it mints a fresh state nonce,
// registers it, and returns the provider authorization URL to redirect the
// browser to.
func (s *AuthService) BeginLogin(ctx context.Context) (state, authorizeURL string, err error) {
	state, err = cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", "", err
	}

	if err := s.Store.AuthStates().PutState(ctx, state, time.Now().UTC()); err != nil {
		return "", "", err
	}
	return state, s.Provider.AuthorizeURL(state), nil
}

// HandleCallback completes the OAuth flow. The state is consumed before
// anything else so a replayed callback fails closed; only after the exchange
// and profile fetch both succeed is the user record touched.
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (domain.Session, string, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.AuthStates().ConsumeState(ctx, state); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("callback with unknown or already-consumed state")
			return domain.Session{}, "", ErrInvalidState
		}
		return domain.Session{}, "", err
	}

	tok, err := s.Provider.ExchangeCode(ctx, code)
	if err != nil {
		return domain.Session{}, "", fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	profile, err := s.Provider.Profile(ctx, tok.AccessToken)
	if err != nil {
		return domain.Session{}, "", fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	user, err := s.upsertUser(ctx, profile, tok)
	if err != nil {
		return domain.Session{}, "", err
	}

	session, signed, err := s.Sessions.Issue(ctx, user.ID)
	if err != nil {
		return domain.Session{}, "", err
	}

	log.Info("user authenticated", "user_id", user.ID)
	return session, signed, nil
}

// upsertUser finds-or-creates the user keyed by provider email, then applies
// the fresh token set. A lost creation race falls through to the update path.
func (s *AuthService) upsertUser(ctx context.Context, profile provider.Profile, tok provider.Token) (domain.User, error) {
	expiresAt := time.Now().UTC().Add(time.Duration(tok.ExpiresIn) * time.Second)
	domainProfile := domain.Profile{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, profile.Email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.createUser(ctx, domainProfile, tok, expiresAt)
		if !errors.Is(err, store.ErrAlreadyExists) {
			return user, err
		}
		user, err = s.Store.Users().GetUserByUsername(ctx, profile.Email)
	}
	if err != nil {
		return domain.User{}, err
	}

	upd := domain.TokenUpdate{
		AccessToken:    tok.AccessToken,
		RefreshToken:   tok.RefreshToken,
		TokenExpiresAt: expiresAt,
		Profile:        &domainProfile,
	}
	if err := s.Store.Users().UpdateUserTokens(ctx, user.ID, upd); err != nil {
		return domain.User{}, err
	}

	user.AccessToken = tok.AccessToken
	user.RefreshToken = tok.RefreshToken
	user.TokenExpiresAt = &expiresAt
	user.Profile = domainProfile
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, profile domain.Profile, tok provider.Token, expiresAt time.Time) (domain.User, error) {
	// OAuth users have no local credential; store a hashed random placeholder.
	password, err := cryptox.GeneratePassword()
	if err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	return s.Store.Users().CreateUser(ctx, domain.User{
		Username:       profile.Email,
		PasswordHash:   hash,
		AccessToken:    tok.AccessToken,
		RefreshToken:   tok.RefreshToken,
		TokenExpiresAt: &expiresAt,
		Profile:        profile,
	})
}

// CurrentUser loads the user behind an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}
	return user, nil
}

// Logout destroys the server-side session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Destroy(ctx, sessionID)
}
