package handlers

import (
	"context"
	"net/http"

	"famwealth/src/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	members, err := h.Controller.GetAllMembers(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if members == nil {
		members = []models.FamilyMember{}
	}
	h.respond(w, r, members, http.StatusOK)
}

func (h *Handler) GetMemberByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	member, err := h.Controller.GetMemberByID(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, member, http.StatusOK)
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var member models.FamilyMember
	if err := h.decode(r, &member); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.CreateMember(ctx, uid, &member); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, member, http.StatusCreated)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var member models.FamilyMember
	if err := h.decode(r, &member); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.UpdateMember(ctx, uid, chi.URLParam(r, "id"), &member); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, member, http.StatusOK)
}

// DeleteMember also removes everything that belongs to the member.
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.DeleteMember(ctx, uid, chi.URLParam(r, "id")); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
