package http

import (
	"errors"
	"net/http"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
}

// ServeHTTP returns the aggregated dashboard payload.
//
//	@Summary		Dashboard
//	@Description	Aggregates accounts, transactions, spending categories, and upcoming bills
//	@Description	into one payload, refreshing the provider token when it has expired.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	service.Dashboard
//	@Failure		401	{object}	map[string]string	"Unauthorized or reauthentication required"
//	@Failure		500	{object}	map[string]string	"Failed to retrieve dashboard data"
//	@Router			/api/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dash, err := h.DashboardService.Load(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, service.ErrReauthenticationRequired):
			httpx.WriteMessage(w, http.StatusUnauthorized, "Authentication expired. Please log in again.")
		default:
			log.Error("failed to build dashboard", "user_id", userID, "error", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to retrieve dashboard data")
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dash)
}
