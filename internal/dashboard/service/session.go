package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/centsible/centsible/pkg/idx"
)

// DefaultSessionTTL is the fixed browser session lifetime.
const DefaultSessionTTL = 24 * time.Hour

// SessionService issues and verifies browser sessions. The cookie carries an
// HS256-signed JWT referencing the server-side session record; the record is
// authoritative, so deleting it invalidates the cookie no matter how much
// lifetime the signature has left.
type SessionService struct {
	Store  store.Store
	Secret []byte
	TTL    time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Issue creates a session for userID and returns it with the signed cookie
// value.
func (s *SessionService) Issue(ctx context.Context, userID int64) (domain.Session, string, error) {
	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return domain.Session{}, "", fmt.Errorf("create session: %w", err)
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return domain.Session{}, "", fmt.Errorf("sign session token: %w", err)
	}
	return session, signed, nil
}

// Verify resolves a signed cookie value to its live server-side session.
// Any failure, a bad signature, an unknown or expired session, collapses to
// ErrUnauthorized.
func (s *SessionService) Verify(ctx context.Context, signed string) (domain.Session, error) {
	token, err := jwt.ParseWithClaims(signed, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Session{}, ErrUnauthorized
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.ID == "" {
		return domain.Session{}, ErrUnauthorized
	}

	session, err := s.Store.Sessions().GetSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrUnauthorized
		}
		return domain.Session{}, err
	}

	if session.Expired(time.Now().UTC()) {
		return domain.Session{}, ErrUnauthorized
	}
	return session, nil
}

// Destroy removes a session record. Destroying an unknown session succeeds.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.Store.Sessions().DeleteSession(ctx, sessionID)
}
