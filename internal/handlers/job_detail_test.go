package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/campusprint/printqueue/internal/models"
	"github.com/campusprint/printqueue/internal/services"
)

// withJobID attaches a chi route parameter to the request.
func withJobID(req *http.Request, jobID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("jobID", jobID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestJobDetailHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobID := uuid.New()

	tests := []struct {
		name         string
		jobIDParam   string
		mockSetup    func(m *MockJobGetter, claims models.Identity)
		expectedCode int
		expectedMsg  string
	}{
		{
			name:       "success",
			jobIDParam: jobID.String(),
			mockSetup: func(m *MockJobGetter, who models.Identity) {
				m.EXPECT().
					Get(gomock.Any(), who, jobID).
					Return(&models.PrintJobDB{JobID: jobID, OwnerID: who.UserID, FileName: "essay.pdf"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "malformed id",
			jobIDParam:   "not-a-uuid",
			expectedCode: http.StatusNotFound,
			expectedMsg:  "Print job not found",
		},
		{
			name:       "absent job",
			jobIDParam: jobID.String(),
			mockSetup: func(m *MockJobGetter, who models.Identity) {
				m.EXPECT().Get(gomock.Any(), who, jobID).Return(nil, services.ErrJobNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedMsg:  "Print job not found",
		},
		{
			name:       "someone else's job",
			jobIDParam: jobID.String(),
			mockSetup: func(m *MockJobGetter, who models.Identity) {
				m.EXPECT().Get(gomock.Any(), who, jobID).Return(nil, services.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
			expectedMsg:  "Forbidden",
		},
		{
			name:       "internal server error",
			jobIDParam: jobID.String(),
			mockSetup: func(m *MockJobGetter, who models.Identity) {
				m.EXPECT().Get(gomock.Any(), who, jobID).Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := studentClaims()
			mockSvc := NewMockJobGetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc, claims.Identity())
			}

			handler := NewJobDetailHandler(mockSvc)

			req := withSession(httptest.NewRequest(http.MethodGet, "/api/jobs/"+tt.jobIDParam, nil), claims)
			req = withJobID(req, tt.jobIDParam)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedMsg != "" {
				var resp MessageResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedMsg, resp.Message)
			} else {
				var job models.PrintJobDB
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &job))
				assert.Equal(t, jobID, job.JobID)
			}
		})
	}
}
