package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"famwealth/src/api/controllers"
	"famwealth/src/events"
	"famwealth/src/repositories"
	"famwealth/src/utils"

	"github.com/go-chi/jwtauth"
)

const (
	readTimeout = 10 * time.Second
	syncTimeout = 60 * time.Second
)

type Handler struct {
	Controller controllers.IController
	Hub        *events.Hub
}

func NewHandler(controller controllers.IController, hub *events.Hub) *Handler {
	return &Handler{Controller: controller, Hub: hub}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors answers with the status the error maps to.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		err = utils.NotFound(err.Error())
	}
	utils.WriteError(w, err)
}

// HandleLoggedErrors is HandleErrors plus a log line on the request logger for
// failures that are not the client's fault.
func (h *Handler) HandleLoggedErrors(w http.ResponseWriter, r *http.Request, err error) {
	if status := utils.StatusFor(err); status >= http.StatusInternalServerError {
		utils.LoggerFromContext(r.Context()).WithField("status", status).Error(err)
	}
	h.HandleErrors(w, err)
}

func (h *Handler) decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return utils.BadRequest("invalid request body: " + err.Error())
	}
	return nil
}

// decodeOptional is decode for endpoints whose body may be empty.
func (h *Handler) decodeOptional(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return utils.BadRequest("invalid request body: " + err.Error())
	}
	return nil
}

// userID returns the sub claim of the verified JWT.
func userID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", utils.Unauthorized("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", utils.Unauthorized("token has no subject")
	}
	return sub, nil
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
