package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"famwealth/src/utils"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	summary, err := h.Controller.GetDashboard(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}
	h.respond(w, r, summary, http.StatusOK)
}

func (h *Handler) GetDashboardXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	buf, err := h.Controller.GetDashboardXLSX(ctx, uid)
	if err != nil {
		h.HandleLoggedErrors(w, r, err)
		return
	}

	filename := fmt.Sprintf("famwealth-%s.xlsx", time.Now().Format(utils.ShortDashDateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
