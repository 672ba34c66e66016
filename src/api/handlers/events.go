package handlers

import (
	"net/http"

	"famwealth/src/utils"
)

// StreamEvents upgrades to a websocket carrying the user's sync and reminder
// events.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	if h.Hub == nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusServiceUnavailable, "event stream disabled"))
		return
	}
	uid, err := userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.Hub.Serve(w, r, uid)
}
