package handlers

import (
	"encoding/json"
	"net/http"

	"famwealth/src/utils"
	"famwealth/src/worker/controllers"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(controller *controllers.Controller) *Handler {
	return &Handler{Controller: controller}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		utils.LoggerFromContext(r.Context()).WithError(err).Warn("failed to write response")
	}
}

// HandleErrors answers with the mapped status. Job failures are already
// logged by the controller.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	utils.WriteError(w, err)
}
