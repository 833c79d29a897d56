package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

// JobSubmitter defines the interface that the service must implement.
type JobSubmitter interface {
	Submit(ctx context.Context, who models.Identity, fileName, fileHandle string, copies int, printType string) (*models.PrintJobDB, error)
}

// FileSaver stores an uploaded document and returns its opaque handle.
type FileSaver interface {
	Save(ctx context.Context, originalName string, src io.Reader) (string, error)
}

// NewJobSubmitHandler returns an HTTP handler that accepts a multipart
// document upload and queues a print job for it.
// @Summary Submit a print job
// @Description Uploads a document with print preferences and assigns it the next queue number.
// @Tags jobs
// @Accept mpfd
// @Produce json
// @Param file formData file true "Document to print"
// @Param copies formData int true "Number of copies, at least 1"
// @Param printType formData string true "bw or color"
// @Success 201 {object} models.PrintJobDB "Queued job"
// @Failure 400 {object} handlers.MessageResponse "No file uploaded / invalid fields"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Router /api/jobs [post]
func NewJobSubmitHandler(svc JobSubmitter, store FileSaver, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session(w, r)
		if claims == nil {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()

		copies, err := strconv.Atoi(r.FormValue("copies"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid copies")
			return
		}
		printType := r.FormValue("printType")

		handle, err := store.Save(r.Context(), header.Filename, file)
		if err != nil {
			logger.Log.Errorw("failed to store upload", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to create job")
			return
		}

		job, err := svc.Submit(r.Context(), claims.Identity(), header.Filename, handle, copies, printType)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCopies):
				writeMessage(w, http.StatusBadRequest, "Invalid copies")
			case errors.Is(err, services.ErrInvalidPrintType):
				writeMessage(w, http.StatusBadRequest, "Invalid print type")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Failed to create job")
			}
			return
		}

		writeJSON(w, http.StatusCreated, job)
	}
}
