package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"participation-service/internal/response"
	"participation-service/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetCourseTracking godoc
// @Summary      Per-course participation tracking
// @Description  Sessions since last participation per course, most urgent first
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.CourseTrackingEntry}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /stats/tracking [get]
func (h *StatsHandler) GetCourseTracking(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	entries, err := h.statsService.GetCourseTracking(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entries)
}

// GetUserStatistics godoc
// @Summary      Participation statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserStatistics}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /stats [get]
func (h *StatsHandler) GetUserStatistics(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetUserStatistics(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}
