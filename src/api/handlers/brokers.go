package handlers

import (
	"context"
	"net/http"

	"famwealth/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetLoginURL(w http.ResponseWriter, r *http.Request) {
	res, err := h.Controller.GetLoginURL(r.Context(), chi.URLParam(r, "broker"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, res, http.StatusOK)
}

func (h *Handler) PostBrokerSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var req schemas.BrokerSessionRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	res, err := h.Controller.PostBrokerSession(ctx, uid, chi.URLParam(r, "broker"), &req)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, res, http.StatusCreated)
}

// SyncBroker fetches from the broker with the stored session and reconciles
// every mapped tuple. A body is optional.
func (h *Handler) SyncBroker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var req schemas.BrokerSyncRequest
	if err := h.decodeOptional(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	res, err := h.Controller.SyncBroker(ctx, uid, chi.URLParam(r, "broker"), &req)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	status := http.StatusOK
	if len(res.Errors) > 0 {
		status = http.StatusMultiStatus
	}
	h.respond(w, r, res, status)
}
