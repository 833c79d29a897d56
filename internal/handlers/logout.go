package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/logger"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, tokenID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler that ends the current session.
// @Summary Log out
// @Description Revokes the current session and clears the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Session ended"
// @Failure 401 {object} handlers.MessageResponse "Not authenticated"
// @Router /api/logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session(w, r)
		if claims == nil {
			return
		}

		if err := svc.Logout(r.Context(), claims.TokenID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		clearSessionCookie(w)
		writeMessage(w, http.StatusOK, "Logged out successfully")
	}
}
