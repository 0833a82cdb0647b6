package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"
)

type BillsHandler struct {
	BillsService *service.BillsService
}

type billPatchRequest struct {
	IsPaid *bool `json:"isPaid"`
}

// HandleSetPaid flips a bill's isPaid flag for the authenticated user.
//
//	@Summary		Update bill paid flag
//	@Description	Sets the isPaid flag on one of the user's bills.
//	@Tags			Bills
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Bill id"
//	@Param			request	body		billPatchRequest	true	"Paid flag"
//	@Success		200		{object}	domain.Bill
//	@Failure		400		{object}	map[string]string	"Malformed id or body"
//	@Failure		401		{object}	map[string]string	"Unauthorized"
//	@Failure		404		{object}	map[string]string	"Bill not found"
//	@Failure		500		{object}	map[string]string	"Internal server error"
//	@Router			/api/bills/{id} [patch].
func (h *BillsHandler) HandleSetPaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	billID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	var req billPatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.IsPaid == nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "isPaid field is required")
		return
	}

	bill, err := h.BillsService.SetPaid(ctx, billID, userID, *req.IsPaid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteMessage(w, http.StatusNotFound, "Bill not found")
			return
		}
		log.Error("failed to update bill", "bill_id", billID, "error", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bill)
}
