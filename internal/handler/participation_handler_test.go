package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"participation-service/internal/dto"
	"participation-service/internal/response"
)

func setupParticipationRouter(userID uuid.UUID, svc *MockParticipationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewParticipationHandler(svc)
	api := router.Group("/api/participation", withUser(userID))
	api.POST("/participations", h.RecordParticipation)
	api.PUT("/participations/:participationId", h.UpdateParticipation)
	api.DELETE("/participations/:participationId", h.DeleteParticipation)
	api.GET("/sessions/:sessionId/participation", h.GetSessionParticipation)
	return router
}

func decodeError(t *testing.T, body []byte) response.ErrorDetail {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error
}

func TestParticipationHandler_RecordParticipation(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    func(*MockParticipationService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "success",
			body: `{"sessionId":"` + sessionID.String() + `","participated":true,"quality":2,"note":"pricing"}`,
			mockService: func(m *MockParticipationService) {
				m.RecordParticipationFunc = func(ctx context.Context, uid uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error) {
					assert.Equal(t, userID, uid)
					assert.Equal(t, sessionID, req.SessionID)
					assert.True(t, *req.Participated)
					assert.Equal(t, 2, *req.Quality)
					assert.Equal(t, "pricing", *req.Note)
					return &dto.ParticipationResponse{
						ID:              uuid.New(),
						UserID:          uid,
						CourseSessionID: req.SessionID,
						Participated:    true,
						Quality:         2,
						Note:            req.Note,
						CreatedAt:       time.Now(),
						UpdatedAt:       time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var resp struct {
					Data dto.ParticipationResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 2, resp.Data.Quality)
				assert.Equal(t, sessionID, resp.Data.CourseSessionID)
			},
		},
		{
			name:           "quality zero is a present value",
			body:           `{"sessionId":"` + sessionID.String() + `","participated":false,"quality":0}`,
			mockService:    func(m *MockParticipationService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing fields reported per field",
			body:           `{"sessionId":"` + sessionID.String() + `"}`,
			mockService:    func(m *MockParticipationService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				detail := decodeError(t, body)
				assert.Equal(t, response.ErrCodeValidation, detail.Code)
				fields := make([]string, 0, len(detail.Fields))
				for _, f := range detail.Fields {
					fields = append(fields, f.Field)
					assert.NotEmpty(t, f.Error)
				}
				assert.ElementsMatch(t, []string{"participated", "quality"}, fields)
			},
		},
		{
			name:           "malformed session id",
			body:           `{"sessionId":"nope","participated":true,"quality":1}`,
			mockService:    func(m *MockParticipationService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "note too long",
			body:           `{"sessionId":"` + sessionID.String() + `","participated":true,"quality":1,"note":"` + strings.Repeat("x", 2001) + `"}`,
			mockService:    func(m *MockParticipationService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid quality from service",
			body: `{"sessionId":"` + sessionID.String() + `","participated":true,"quality":4}`,
			mockService: func(m *MockParticipationService) {
				m.RecordParticipationFunc = func(ctx context.Context, uid uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error) {
					return nil, response.NewAppError(response.ErrCodeInvalidQuality, "Quality must be between 0 and 3", "")
				}
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, response.ErrCodeInvalidQuality, decodeError(t, body).Code)
			},
		},
		{
			name: "session not found",
			body: `{"sessionId":"` + sessionID.String() + `","participated":true,"quality":1}`,
			mockService: func(m *MockParticipationService) {
				m.RecordParticipationFunc = func(ctx context.Context, uid uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error) {
					return nil, response.NewAppError(response.ErrCodeNotFound, "Session not found", "")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "unauthenticated user",
			body: `{"sessionId":"` + sessionID.String() + `","participated":true,"quality":1}`,
			mockService: func(m *MockParticipationService) {
				m.RecordParticipationFunc = func(ctx context.Context, uid uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error) {
					return nil, response.NewAppError(response.ErrCodeUnauthorized, "Unauthorized", "")
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "store failure",
			body: `{"sessionId":"` + sessionID.String() + `","participated":true,"quality":1}`,
			mockService: func(m *MockParticipationService) {
				m.RecordParticipationFunc = func(ctx context.Context, uid uuid.UUID, req *dto.RecordParticipationRequest) (*dto.ParticipationResponse, error) {
					return nil, response.NewAppError(response.ErrCodeInternal, "Internal server error", "")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockParticipationService{}
			tt.mockService(svc)
			router := setupParticipationRouter(userID, svc)

			req := httptest.NewRequest(http.MethodPost, "/api/participation/participations", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestParticipationHandler_UpdateParticipation(t *testing.T) {
	userID := uuid.New()
	participationID := uuid.New()

	tests := []struct {
		name           string
		path           string
		mockService    func(*MockParticipationService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success",
			path: "/api/participation/participations/" + participationID.String(),
			mockService: func(m *MockParticipationService) {
				m.UpdateParticipationFunc = func(ctx context.Context, uid, pid uuid.UUID, req *dto.UpdateParticipationRequest) (*dto.ParticipationResponse, error) {
					assert.Equal(t, participationID, pid)
					return &dto.ParticipationResponse{ID: pid, Quality: *req.Quality}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid id",
			path:           "/api/participation/participations/not-a-uuid",
			mockService:    func(m *MockParticipationService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name: "forbidden renders as not found",
			path: "/api/participation/participations/" + participationID.String(),
			mockService: func(m *MockParticipationService) {
				m.UpdateParticipationFunc = func(ctx context.Context, uid, pid uuid.UUID, req *dto.UpdateParticipationRequest) (*dto.ParticipationResponse, error) {
					return nil, response.NewAppError(response.ErrCodeForbidden, "Participation not found", "")
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockParticipationService{}
			tt.mockService(svc)
			router := setupParticipationRouter(userID, svc)

			req := httptest.NewRequest(http.MethodPut, tt.path, bytes.NewBufferString(`{"participated":true,"quality":3}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w.Body.Bytes()).Code)
			}
		})
	}
}

func TestParticipationHandler_ForbiddenAndNotFoundIndistinguishable(t *testing.T) {
	userID := uuid.New()
	bodies := make([]string, 0, 2)

	for _, code := range []string{response.ErrCodeForbidden, response.ErrCodeNotFound} {
		code := code
		svc := &MockParticipationService{
			DeleteParticipationFunc: func(ctx context.Context, uid, pid uuid.UUID) error {
				return response.NewAppError(code, "Participation not found", "")
			},
		}
		router := setupParticipationRouter(userID, svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/participation/participations/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		bodies = append(bodies, w.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
}

func TestParticipationHandler_DeleteParticipation(t *testing.T) {
	userID := uuid.New()
	participationID := uuid.New()
	called := false
	svc := &MockParticipationService{
		DeleteParticipationFunc: func(ctx context.Context, uid, pid uuid.UUID) error {
			called = true
			assert.Equal(t, userID, uid)
			assert.Equal(t, participationID, pid)
			return nil
		},
	}
	router := setupParticipationRouter(userID, svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/participation/participations/"+participationID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.JSONEq(t, `{"data":{"success":true}}`, w.Body.String())
}

func TestParticipationHandler_GetSessionParticipation(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	svc := &MockParticipationService{
		GetSessionParticipationFunc: func(ctx context.Context, uid, sid uuid.UUID) (*dto.ParticipationResponse, error) {
			if sid != sessionID {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Participation not found", "")
			}
			return &dto.ParticipationResponse{CourseSessionID: sid, Participated: true, Quality: 1}, nil
		},
	}
	router := setupParticipationRouter(userID, svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/participation/sessions/"+sessionID.String()+"/participation", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/participation/sessions/"+uuid.New().String()+"/participation", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExtractAuthData_MissingUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/participations", NewParticipationHandler(&MockParticipationService{}).RecordParticipation)

	req := httptest.NewRequest(http.MethodPost, "/participations", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrCodeUnauthorized, decodeError(t, w.Body.Bytes()).Code)
}
