package http

import (
	"net/http"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

type AuthLoginHandler struct {
	AuthService *service.AuthService
}

type authLoginResponse struct {
	State        string `json:"state"`
	AuthorizeURL string `json:"authorizeUrl"`
}

// ServeHTTP begins a server-driven login: it mints and registers a state
// nonce, then hands back the provider authorization URL.
//
//	@Summary		Begin OAuth login
//	@Description	Generates and registers a CSRF state nonce and returns the provider authorization URL.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authLoginResponse
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Router			/api/auth/login [get].
func (h *AuthLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	state, authorizeURL, err := h.AuthService.BeginLogin(ctx)
	if err != nil {
		log.Error("failed to begin login", "error", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authLoginResponse{
		State:        state,
		AuthorizeURL: authorizeURL,
	})
}
