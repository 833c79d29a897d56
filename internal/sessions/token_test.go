package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/campusprint/printqueue/internal/models"
)

func TestTokens_GenerateParse(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	who := models.Identity{UserID: uuid.New(), Role: models.RoleStaff}

	signed, tokenID, err := tokens.Generate(context.Background(), who)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEqual(t, uuid.Nil, tokenID)

	claims, err := tokens.Parse(context.Background(), signed)
	assert.NoError(t, err)
	assert.Equal(t, who.UserID, claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.Equal(t, tokenID, claims.TokenID)
	assert.Equal(t, who, claims.Identity())
}

func TestTokens_ParseExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	signed, _, err := tokens.Generate(context.Background(), models.Identity{UserID: uuid.New(), Role: models.RoleStudent})
	assert.NoError(t, err)

	claims, err := tokens.Parse(context.Background(), signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokens_ParseWrongSecret(t *testing.T) {
	signer := NewTokens("secret-a", time.Hour)
	verifier := NewTokens("secret-b", time.Hour)

	signed, _, err := signer.Generate(context.Background(), models.Identity{UserID: uuid.New(), Role: models.RoleStudent})
	assert.NoError(t, err)

	claims, err := verifier.Parse(context.Background(), signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokens_ParseGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	claims, err := tokens.Parse(context.Background(), "not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokens_TokenFromRequest(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	ctx := context.Background()

	t.Run("FromCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

		got, err := tokens.TokenFromRequest(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "cookie-token", got)
	})

	t.Run("FromBearerHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")

		got, err := tokens.TokenFromRequest(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "header-token", got)
	})

	t.Run("CookieWinsOverHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
		req.Header.Set("Authorization", "Bearer header-token")

		got, err := tokens.TokenFromRequest(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "cookie-token", got)
	})

	t.Run("Missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := tokens.TokenFromRequest(ctx, req)
		assert.Error(t, err)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")

		_, err := tokens.TokenFromRequest(ctx, req)
		assert.Error(t, err)
	})
}
