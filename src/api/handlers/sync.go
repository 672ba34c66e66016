package handlers

import (
	"context"
	"net/http"
	"strconv"

	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"
)

// SyncHoldings replaces the holdings of one (broker, member, asset class)
// tuple with the posted records.
func (h *Handler) SyncHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var req schemas.SyncRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	result, err := h.Controller.SyncHoldings(ctx, uid, &req)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) GetSyncLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.HandleErrors(w, utils.BadRequest("limit must be a positive integer"))
			return
		}
	}
	logs, err := h.Controller.GetSyncLogs(ctx, uid, limit)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if logs == nil {
		logs = []models.SyncLog{}
	}
	h.respond(w, r, logs, http.StatusOK)
}
