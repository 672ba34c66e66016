package handlers

import (
	"context"
	"net/http"

	"famwealth/src/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	accounts, err := h.Controller.GetAllAccounts(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	h.respond(w, r, accounts, http.StatusOK)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var account models.Account
	if err := h.decode(r, &account); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.CreateAccount(ctx, uid, &account); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, account, http.StatusCreated)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var account models.Account
	if err := h.decode(r, &account); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.UpdateAccount(ctx, uid, chi.URLParam(r, "id"), &account); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, account, http.StatusOK)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.DeleteAccount(ctx, uid, chi.URLParam(r, "id")); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHoldings lists synced holdings, optionally narrowed with the member_id
// and asset_class query parameters.
func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	q := r.URL.Query()
	holdings, err := h.Controller.GetHoldings(ctx, uid, q.Get("member_id"), q.Get("asset_class"))
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	h.respond(w, r, holdings, http.StatusOK)
}
