package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

// JobGetter defines the interface that the service must implement.
type JobGetter interface {
	Get(ctx context.Context, who models.Identity, jobID uuid.UUID) (*models.PrintJobDB, error)
}

// NewJobDetailHandler returns an HTTP handler for a single print job.
// @Summary Get a print job
// @Description Returns one job. Only the owner or a staff member may read it.
// @Tags jobs
// @Produce json
// @Param jobID path string true "Job id"
// @Success 200 {object} models.PrintJobDB "The job"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Failure 403 {object} handlers.MessageResponse "Not the owner and not staff"
// @Failure 404 {object} handlers.MessageResponse "No such job"
// @Router /api/jobs/{jobID} [get]
func NewJobDetailHandler(svc JobGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session(w, r)
		if claims == nil {
			return
		}

		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Print job not found")
			return
		}

		job, err := svc.Get(r.Context(), claims.Identity(), jobID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrJobNotFound):
				writeMessage(w, http.StatusNotFound, "Print job not found")
			case errors.Is(err, services.ErrForbidden):
				writeMessage(w, http.StatusForbidden, "Forbidden")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, job)
	}
}
