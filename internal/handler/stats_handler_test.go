package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"participation-service/internal/dto"
)

func setupStatsRouter(userID uuid.UUID, stats *MockStatsService, courses *MockCourseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	sh := NewStatsHandler(stats)
	ch := NewCourseHandler(courses)
	api := router.Group("/api/participation", withUser(userID))
	api.GET("/stats", sh.GetUserStatistics)
	api.GET("/stats/tracking", sh.GetCourseTracking)
	api.GET("/courses", ch.ListCourses)
	return router
}

func TestStatsHandler(t *testing.T) {
	userID := uuid.New()
	avg := 2.5

	tests := []struct {
		name           string
		path           string
		stats          *MockStatsService
		expectedStatus int
		expectedJSON   string
	}{
		{
			name: "tracking",
			path: "/api/participation/stats/tracking",
			stats: &MockStatsService{
				GetCourseTrackingFunc: func(ctx context.Context, uid uuid.UUID) ([]dto.CourseTrackingEntry, error) {
					return []dto.CourseTrackingEntry{{CourseName: "MKT", Theme: "red", SessionsSinceLastParticipation: 3, Status: "critical"}}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "statistics",
			path: "/api/participation/stats",
			stats: &MockStatsService{
				GetUserStatisticsFunc: func(ctx context.Context, uid uuid.UUID) (*dto.UserStatistics, error) {
					return &dto.UserStatistics{
						CourseStatistics: []dto.CourseStatistics{},
						OverallStatistics: dto.OverallStatistics{
							TotalCourses:                   0,
							OverallParticipationPercentage: 0,
							AverageQuality:                 &avg,
						},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"data":{"courseStatistics":[],"overallStatistics":{"totalCourses":0,"totalSessionsPassed":0,"participatedSessions":0,"overallParticipationPercentage":0,"averageQuality":2.5}}}`,
		},
		{
			name: "unclassified error becomes 500",
			path: "/api/participation/stats",
			stats: &MockStatsService{
				GetUserStatisticsFunc: func(ctx context.Context, uid uuid.UUID) (*dto.UserStatistics, error) {
					return nil, errors.New("connection reset")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "record not found becomes 404",
			path: "/api/participation/stats/tracking",
			stats: &MockStatsService{
				GetCourseTrackingFunc: func(ctx context.Context, uid uuid.UUID) ([]dto.CourseTrackingEntry, error) {
					return nil, gorm.ErrRecordNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			setupStatsRouter(userID, tt.stats, &MockCourseService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedJSON != "" {
				assert.JSONEq(t, tt.expectedJSON, w.Body.String())
			}
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "connection reset")
			}
		})
	}
}

func TestCourseHandler_ListCourses(t *testing.T) {
	courses := &MockCourseService{
		ListCoursesFunc: func(ctx context.Context) ([]dto.CourseResponse, error) {
			return []dto.CourseResponse{{Name: "FIN 1", Theme: "blue"}}, nil
		},
	}
	w := httptest.NewRecorder()
	setupStatsRouter(uuid.New(), &MockStatsService{}, courses).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/participation/courses", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"theme":"blue"`)
}
