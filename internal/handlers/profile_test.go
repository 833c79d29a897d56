package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

func TestProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		claims := studentClaims()
		phone := "555-0134"

		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().
			UpdateProfile(gomock.Any(), claims.UserID, "New Name", &phone).
			Return(&models.UserDB{UserID: claims.UserID, Username: "alice", Name: "New Name", Phone: &phone}, nil)

		handler := NewProfileHandler(mockSvc)

		req := withSession(httptest.NewRequest(http.MethodPatch, "/api/user/profile",
			bytes.NewBufferString(`{"name":"New Name","phone":"555-0134"}`)), claims)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.UserDB
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "New Name", got.Name)
	})

	t.Run("user gone", func(t *testing.T) {
		claims := studentClaims()
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().
			UpdateProfile(gomock.Any(), claims.UserID, "x", gomock.Nil()).
			Return(nil, services.ErrUserNotFound)

		handler := NewProfileHandler(mockSvc)

		req := withSession(httptest.NewRequest(http.MethodPatch, "/api/user/profile",
			bytes.NewBufferString(`{"name":"x"}`)), claims)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"message":"User not found"}`, rr.Body.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		handler := NewProfileHandler(NewMockProfileUpdater(ctrl))

		req := withSession(httptest.NewRequest(http.MethodPatch, "/api/user/profile",
			bytes.NewBufferString(`{invalid`)), studentClaims())
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
