package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/campusprint/printqueue/internal/models"
)

func TestJobsListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		claims := studentClaims()
		jobs := []models.PrintJobView{
			{
				PrintJobDB: models.PrintJobDB{JobID: uuid.New(), OwnerID: claims.UserID, FileName: "essay.pdf", Status: models.StatusPending, QueueNumber: 3},
				Owner:      models.JobOwner{Username: "alice", Name: "Alice", Role: models.RoleStudent},
			},
		}

		mockSvc := NewMockJobLister(ctrl)
		mockSvc.EXPECT().
			List(gomock.Any(), models.Identity{UserID: claims.UserID, Role: claims.Role}).
			Return(jobs, nil)

		handler := NewJobsListHandler(mockSvc)

		req := withSession(httptest.NewRequest(http.MethodGet, "/api/jobs", nil), claims)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "essay.pdf", got[0]["fileName"])
		// Owner info rides along under the user key.
		owner, ok := got[0]["user"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "alice", owner["username"])
	})

	t.Run("empty list", func(t *testing.T) {
		claims := staffClaims()
		mockSvc := NewMockJobLister(ctrl)
		mockSvc.EXPECT().List(gomock.Any(), gomock.Any()).Return([]models.PrintJobView{}, nil)

		handler := NewJobsListHandler(mockSvc)

		req := withSession(httptest.NewRequest(http.MethodGet, "/api/jobs", nil), claims)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("internal server error", func(t *testing.T) {
		claims := studentClaims()
		mockSvc := NewMockJobLister(ctrl)
		mockSvc.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("database failure"))

		handler := NewJobsListHandler(mockSvc)

		req := withSession(httptest.NewRequest(http.MethodGet, "/api/jobs", nil), claims)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
