package http

import (
	"errors"
	"net/http"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

// SessionMiddleware resolves the session cookie to a user before the guarded
// handler runs. A missing, malformed, expired, or unknown session, or a user
// that no longer exists, yields 401 without touching the handler or the
// upstream provider.
func SessionMiddleware(sessions *service.SessionService, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			session, err := sessions.Verify(ctx, cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthorized) {
					log.Error("session verification failed", "error", err)
				}
				httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			// A session outliving its user is dead too.
			if _, err := st.Users().GetUserByID(ctx, session.UserID); err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					log.Error("session user lookup failed", "error", err)
				}
				httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx = httpx.ContextWithAuth(ctx, session.UserID, session.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
