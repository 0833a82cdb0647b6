package http

import (
	"net/http"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

type AuthLogoutHandler struct {
	AuthService  *service.AuthService
	Sessions     *service.SessionService
	SecureCookie bool
}

// ServeHTTP destroys the server-side session and kills the cookie. Logout is
// idempotent: an absent or stale cookie still clears cleanly.
//
//	@Summary		Logout
//	@Description	Destroys the session and clears the session cookie.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]string	"Logged out successfully"
//	@Failure		500	{object}	map[string]string	"Logout failed"
//	@Router			/api/auth/logout [post].
func (h *AuthLogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if session, err := h.Sessions.Verify(ctx, cookie.Value); err == nil {
			if err := h.AuthService.Logout(ctx, session.ID); err != nil {
				log.Error("failed to destroy session", "error", err)
				httpx.WriteMessage(w, http.StatusInternalServerError, "Logout failed")
				return
			}
		}
	}

	clearSessionCookie(w, h.SecureCookie)
	httpx.WriteMessage(w, http.StatusOK, "Logged out successfully")
}
