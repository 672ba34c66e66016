package handlers

import (
	"context"
	"net/http"

	"famwealth/src/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllReminders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	reminders, err := h.Controller.GetAllReminders(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	h.respond(w, r, reminders, http.StatusOK)
}

func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var reminder models.Reminder
	if err := h.decode(r, &reminder); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.CreateReminder(ctx, uid, &reminder); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, reminder, http.StatusCreated)
}

func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.Controller.DeleteReminder(ctx, uid, chi.URLParam(r, "id")); err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RegenerateReminders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	reminders, err := h.Controller.RegenerateReminders(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	h.respond(w, r, reminders, http.StatusOK)
}
