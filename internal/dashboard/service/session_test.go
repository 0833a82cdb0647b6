package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store/drivers/memory"
)

func TestSessionService(t *testing.T) {
	ctx := context.Background()

	t.Run("issue and verify round trip", func(t *testing.T) {
		st := memory.NewStore()
		svc := &SessionService{Store: st, Secret: []byte("test-secret")}

		session, signed, err := svc.Issue(ctx, 7)
		require.NoError(t, err)
		require.NotEmpty(t, session.ID)
		require.NotEmpty(t, signed)

		verified, err := svc.Verify(ctx, signed)
		require.NoError(t, err)
		require.Equal(t, session.ID, verified.ID)
		require.EqualValues(t, 7, verified.UserID)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		svc := &SessionService{Store: memory.NewStore(), Secret: []byte("test-secret")}
		_, err := svc.Verify(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("token signed with a different secret is unauthorized", func(t *testing.T) {
		st := memory.NewStore()
		issuer := &SessionService{Store: st, Secret: []byte("other-secret")}
		verifier := &SessionService{Store: st, Secret: []byte("test-secret")}

		_, signed, err := issuer.Issue(ctx, 7)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, signed)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("destroyed session is unauthorized even with a valid signature", func(t *testing.T) {
		st := memory.NewStore()
		svc := &SessionService{Store: st, Secret: []byte("test-secret")}

		session, signed, err := svc.Issue(ctx, 7)
		require.NoError(t, err)
		require.NoError(t, svc.Destroy(ctx, session.ID))

		_, err = svc.Verify(ctx, signed)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired server-side session is unauthorized", func(t *testing.T) {
		st := memory.NewStore()
		svc := &SessionService{Store: st, Secret: []byte("test-secret")}

		session, signed, err := svc.Issue(ctx, 7)
		require.NoError(t, err)

		// Rewrite the record with an already-passed expiry.
		require.NoError(t, st.Sessions().DeleteSession(ctx, session.ID))
		session.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		require.NoError(t, st.Sessions().CreateSession(ctx, session))

		_, err = svc.Verify(ctx, signed)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("sessions default to a 24 hour lifetime", func(t *testing.T) {
		st := memory.NewStore()
		svc := &SessionService{Store: st, Secret: []byte("test-secret")}

		session, _, err := svc.Issue(ctx, 7)
		require.NoError(t, err)
		require.WithinDuration(t, session.CreatedAt.Add(24*time.Hour), session.ExpiresAt, time.Second)
	})
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now().UTC()
	s := domain.Session{ExpiresAt: now.Add(time.Minute)}
	require.False(t, s.Expired(now))
	require.True(t, s.Expired(now.Add(2*time.Minute)))
	require.True(t, s.Expired(s.ExpiresAt))
}
