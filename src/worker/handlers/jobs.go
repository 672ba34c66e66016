package handlers

import (
	"context"
	"net/http"
	"time"

	"famwealth/src/schemas"
	"famwealth/src/utils"
)

const jobTimeout = 5 * time.Minute

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Controller.ListJobs(), http.StatusOK)
}

// RunSyncAll triggers the broker sync job immediately.
func (h *Handler) RunSyncAll(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, h.Controller.SyncAllUsers)
}

// RunReminders triggers reminder regeneration immediately.
func (h *Handler) RunReminders(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, h.Controller.RegenerateAllReminders)
}

func (h *Handler) runJob(w http.ResponseWriter, r *http.Request, job func(context.Context) (*schemas.JobRun, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), jobTimeout)
	defer cancel()

	run, err := job(ctx)
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Error("job run failed")
		h.HandleErrors(w, err)
		return
	}

	status := http.StatusOK
	if len(run.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	h.respond(w, r, run, status)
}
