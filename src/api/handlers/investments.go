package handlers

import (
	"context"
	"net/http"

	"famwealth/src/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllInvestments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	investments, err := h.Controller.GetAllInvestments(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if investments == nil {
		investments = []models.Investment{}
	}
	h.respond(w, r, investments, http.StatusOK)
}

func (h *Handler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var investment models.Investment
	if err := h.decode(r, &investment); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.CreateInvestment(ctx, uid, &investment); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, investment, http.StatusCreated)
}

func (h *Handler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var investment models.Investment
	if err := h.decode(r, &investment); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.UpdateInvestment(ctx, uid, chi.URLParam(r, "id"), &investment); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, investment, http.StatusOK)
}

func (h *Handler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.DeleteInvestment(ctx, uid, chi.URLParam(r, "id")); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAllLiabilities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	liabilities, err := h.Controller.GetAllLiabilities(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if liabilities == nil {
		liabilities = []models.Liability{}
	}
	h.respond(w, r, liabilities, http.StatusOK)
}

func (h *Handler) CreateLiability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var liability models.Liability
	if err := h.decode(r, &liability); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.CreateLiability(ctx, uid, &liability); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, liability, http.StatusCreated)
}

func (h *Handler) UpdateLiability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var liability models.Liability
	if err := h.decode(r, &liability); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.UpdateLiability(ctx, uid, chi.URLParam(r, "id"), &liability); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, liability, http.StatusOK)
}

func (h *Handler) DeleteLiability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.DeleteLiability(ctx, uid, chi.URLParam(r, "id")); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
