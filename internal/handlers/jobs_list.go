package handlers

import (
	"context"
	"net/http"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
)

// JobLister defines the interface that the service must implement.
type JobLister interface {
	List(ctx context.Context, who models.Identity) ([]models.PrintJobView, error)
}

// NewJobsListHandler returns an HTTP handler that lists print jobs.
// @Summary List print jobs
// @Description Students see their own jobs newest first. Staff see every job ordered by triage priority: printing, pending, ready, completed, ties broken by queue number.
// @Tags jobs
// @Produce json
// @Success 200 {array} models.PrintJobView "Visible jobs"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Router /api/jobs [get]
func NewJobsListHandler(svc JobLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session(w, r)
		if claims == nil {
			return
		}

		jobs, err := svc.List(r.Context(), claims.Identity())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, jobs)
	}
}
