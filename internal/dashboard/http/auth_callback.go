package http

import (
	"errors"
	"net/http"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

type AuthCallbackHandler struct {
	AuthService  *service.AuthService
	SecureCookie bool
}

type authCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// ServeHTTP completes the OAuth flow: verifies the single-use state, exchanges
// the code, upserts the user, and establishes the session cookie.
//
//	@Summary		OAuth callback
//	@Description	Verifies the CSRF state, exchanges the authorization code, and signs the user in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authCallbackRequest	true	"Authorization code and state"
//	@Success		200		{object}	map[string]string	"Authentication successful"
//	@Failure		400		{object}	map[string]string	"Missing parameters or invalid state"
//	@Failure		500		{object}	map[string]string	"Authentication failed"
//	@Router			/api/auth/callback [post].
func (h *AuthCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authCallbackRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Code == "" || req.State == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "Code and state parameters are required")
		return
	}

	session, signed, err := h.AuthService.HandleCallback(ctx, req.Code, req.State)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidState):
			httpx.WriteMessage(w, http.StatusBadRequest, "Invalid state parameter")
		default:
			// Provider error details stay in the log; the client gets the
			// generic failure.
			log.Error("oauth callback failed", "error", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "Authentication failed")
		}
		return
	}

	setSessionCookie(w, signed, session.ExpiresAt, h.SecureCookie)
	httpx.NoCache(w)
	httpx.WriteMessage(w, http.StatusOK, "Authentication successful")
}
