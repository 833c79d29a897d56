package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

// CurrentUserGetter defines the interface that the service must implement.
type CurrentUserGetter interface {
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// NewCurrentUserHandler returns an HTTP handler for the current account.
// @Summary Current user
// @Description Returns the account behind the active session.
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserDB "Current user"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Router /api/user [get]
func NewCurrentUserHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session(w, r)
		if claims == nil {
			return
		}

		user, err := svc.CurrentUser(r.Context(), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				// The session outlived the account; treat as logged out.
				writeMessage(w, http.StatusUnauthorized, "Not authenticated")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
