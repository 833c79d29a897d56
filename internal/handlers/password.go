package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/services"
)

// PasswordChanger defines the interface that the service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// PasswordChangeRequest represents the JSON body for a password change
// swagger:model PasswordChangeRequest
type PasswordChangeRequest struct {
	// Current password
	// required: true
	CurrentPassword string `json:"currentPassword"`

	// New password
	// required: true
	NewPassword string `json:"newPassword"`
}

// NewPasswordHandler returns an HTTP handler for password changes.
// @Summary Change password
// @Description Verifies the current password and replaces it with a new one.
// @Tags user
// @Accept json
// @Produce json
// @Param passwordChangeRequest body handlers.PasswordChangeRequest true "Password change request"
// @Success 200 {object} handlers.MessageResponse "Password updated"
// @Failure 400 {object} handlers.MessageResponse "Current password is incorrect"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Router /api/user/password [patch]
func NewPasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session(w, r)
		if claims == nil {
			return
		}

		var req PasswordChangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		err := svc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrWrongPassword):
				writeMessage(w, http.StatusBadRequest, "Current password is incorrect")
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Failed to update password")
			}
			return
		}

		writeMessage(w, http.StatusOK, "Password updated successfully")
	}
}
