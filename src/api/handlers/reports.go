package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetCategoryReport answers GET /api/reports/{category}?sort=gain&order=desc.
func (h *Handler) GetCategoryReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	q := r.URL.Query()
	desc := strings.EqualFold(q.Get("order"), "desc")
	report, err := h.Controller.GetCategoryReport(ctx, uid, chi.URLParam(r, "category"), q.Get("sort"), desc)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, report, http.StatusOK)
}
