package http

import (
	"errors"
	"net/http"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

type AuthStateHandler struct {
	AuthService *service.AuthService
}

type authStateRequest struct {
	State string `json:"state"`
}

// ServeHTTP registers a client-generated CSRF state nonce.
//
//	@Summary		Register OAuth state
//	@Description	Records a one-time CSRF state nonce ahead of the provider redirect.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authStateRequest	true	"State nonce"
//	@Success		200		{object}	map[string]string	"State registered successfully"
//	@Failure		400		{object}	map[string]string	"State parameter is required / invalid"
//	@Failure		500		{object}	map[string]string	"Internal server error"
//	@Router			/api/auth/state [post].
func (h *AuthStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authStateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.State == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "State parameter is required")
		return
	}

	if err := h.AuthService.RegisterState(ctx, req.State); err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			httpx.WriteMessage(w, http.StatusBadRequest, "Invalid state parameter")
			return
		}
		log.Error("failed to register state", "error", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "State registered successfully")
}
