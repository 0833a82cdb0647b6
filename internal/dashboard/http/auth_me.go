package http

import (
	"errors"
	"net/http"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

type AuthMeHandler struct {
	AuthService *service.AuthService
}

type authMeResponse struct {
	ID       int64          `json:"id"`
	Username string         `json:"username"`
	Profile  domain.Profile `json:"profile"`
}

// ServeHTTP returns the authenticated user without token material.
//
//	@Summary		Current user
//	@Description	Returns the signed-in user's id, username, and provider profile.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authMeResponse
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Router			/api/auth/me [get].
func (h *AuthMeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		log.Error("failed to load current user", "user_id", userID, "error", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authMeResponse{
		ID:       user.ID,
		Username: user.Username,
		Profile:  user.Profile,
	})
}
