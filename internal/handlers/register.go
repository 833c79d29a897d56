package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, name string, phone *string) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// Display name
	// required: true
	// example: John Doe
	Name string `json:"name"`

	// Contact phone
	// example: 555-0134
	Phone *string `json:"phone,omitempty"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new student account
// @Description Creates a new account with the student role and opens a session for it. Username must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} models.UserDB "User successfully registered"
// @Failure 400 {object} handlers.MessageResponse "Username already exists / invalid request"
// @Router /api/register [post]
func NewRegisterHandler(svc Registerer, cookieTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Username == "" || req.Password == "" || req.Name == "" {
			writeMessage(w, http.StatusBadRequest, "Username, password and name are required")
			return
		}

		user, token, err := svc.Register(r.Context(), req.Username, req.Password, req.Name, req.Phone)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUsernameTaken):
				writeMessage(w, http.StatusBadRequest, "Username already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setSessionCookie(w, token, cookieTTL)
		writeJSON(w, http.StatusCreated, user)
	}
}
