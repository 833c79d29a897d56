package sessions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/models"
)

// CookieName is the cookie that carries the session token.
const CookieName = "printqueue_session"

// Claims is the identity material carried by a session token.
type Claims struct {
	UserID  uuid.UUID // Authenticated user
	Role    string    // Role captured at login
	TokenID uuid.UUID // Unique token id, the revocation key
}

// Identity converts the claims into a request identity.
func (c *Claims) Identity() models.Identity {
	return models.Identity{UserID: c.UserID, Role: c.Role}
}

// Tokens signs and parses session tokens (HS256 JWT).
type Tokens struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// NewTokens creates a new Tokens instance
func NewTokens(secretKey string, expiration time.Duration) *Tokens {
	return &Tokens{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a session token for the given identity and returns the
// signed token together with its token id.
func (t *Tokens) Generate(ctx context.Context, who models.Identity) (string, uuid.UUID, error) {
	tokenID := uuid.New()
	claims := jwt.MapClaims{
		"user_id": who.UserID.String(),
		"role":    who.Role,
		"jti":     tokenID.String(),
		"exp":     time.Now().Add(t.Exp).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.SecretKey))
	if err != nil {
		return "", uuid.Nil, err
	}
	return signed, tokenID, nil
}

// Parse validates the token string and returns its claims.
func (t *Tokens) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(t.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("user_id not found in token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid user_id format")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, errors.New("role not found in token")
	}

	tokenIDStr, ok := claims["jti"].(string)
	if !ok {
		return nil, errors.New("jti not found in token")
	}
	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return nil, errors.New("invalid jti format")
	}

	return &Claims{UserID: userID, Role: role, TokenID: tokenID}, nil
}

// TokenFromRequest extracts the token string from the session cookie,
// falling back to the Authorization header.
func (t *Tokens) TokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("no session cookie or authorization header")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
