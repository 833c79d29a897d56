package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

// StatusUpdater defines the interface that the service must implement.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, who models.Identity, jobID uuid.UUID, status string) (*models.PrintJobDB, error)
}

// StatusUpdateRequest represents the JSON body for a status change
// swagger:model StatusUpdateRequest
type StatusUpdateRequest struct {
	// New status
	// required: true
	// example: printing
	Status string `json:"status"`
}

// NewJobStatusHandler returns an HTTP handler that moves a job through
// the queue. Staff only.
// @Summary Update a job's status
// @Description Sets the job's status to one of pending, printing, ready, completed.
// @Tags jobs
// @Accept json
// @Produce json
// @Param jobID path string true "Job id"
// @Param statusUpdateRequest body handlers.StatusUpdateRequest true "New status"
// @Success 200 {object} models.PrintJobDB "Updated job"
// @Failure 400 {object} handlers.MessageResponse "Invalid status"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Failure 403 {object} handlers.MessageResponse "Staff role required"
// @Failure 404 {object} handlers.MessageResponse "No such job"
// @Router /api/jobs/{jobID}/status [patch]
func NewJobStatusHandler(svc StatusUpdater) http.HandlerFunc {
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

		var req StatusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid status")
			return
		}

		job, err := svc.UpdateStatus(r.Context(), claims.Identity(), jobID, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden):
				writeMessage(w, http.StatusForbidden, "Staff role required")
			case errors.Is(err, services.ErrJobNotFound):
				writeMessage(w, http.StatusNotFound, "Print job not found")
			case errors.Is(err, services.ErrInvalidStatus):
				writeMessage(w, http.StatusBadRequest, "Invalid status")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, job)
	}
}
