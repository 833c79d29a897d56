package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

// ProfileUpdater defines the interface that the service must implement.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, name string, phone *string) (*models.UserDB, error)
}

// ProfileUpdateRequest represents the JSON body for a profile update
// swagger:model ProfileUpdateRequest
type ProfileUpdateRequest struct {
	// Display name
	// required: true
	// example: John Doe
	Name string `json:"name"`

	// Contact phone
	// example: 555-0134
	Phone *string `json:"phone,omitempty"`
}

// NewProfileHandler returns an HTTP handler for profile updates.
// @Summary Update profile
// @Description Updates the current user's display name and phone.
// @Tags user
// @Accept json
// @Produce json
// @Param profileUpdateRequest body handlers.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} models.UserDB "Updated user"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Failure 404 {object} handlers.MessageResponse "No such user"
// @Router /api/user/profile [patch]
func NewProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session(w, r)
		if claims == nil {
			return
		}

		var req ProfileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := svc.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Phone)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Failed to update profile")
			}
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
