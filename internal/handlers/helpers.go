package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campusprint/printqueue/internal/middlewares"
	"github.com/campusprint/printqueue/internal/sessions"
)

// MessageResponse is the JSON body used for confirmations and errors.
// swagger:model MessageResponse
type MessageResponse struct {
	// Human readable message, presented verbatim by clients
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, MessageResponse{Message: msg})
}

// session returns the request's session claims, or nil with a 401 already
// written. Handlers behind the auth middleware always get claims; the nil
// branch only fires when a handler is mounted without it.
func session(w http.ResponseWriter, r *http.Request) *sessions.Claims {
	claims := middlewares.SessionFromContext(r.Context())
	if claims == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated")
	}
	return claims
}

// setSessionCookie attaches the session token to the response.
func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessions.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessions.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
