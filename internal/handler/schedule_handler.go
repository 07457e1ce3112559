package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"participation-service/internal/response"
	"participation-service/internal/service"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// GetTodaysAgenda godoc
// @Summary      Today's sessions
// @Description  Sessions starting today in the service timezone, with status and the caller's participation
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.SessionView}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /sessions/today [get]
func (h *ScheduleHandler) GetTodaysAgenda(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	sessions, err := h.scheduleService.GetTodaysAgenda(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, sessions)
}

// GetWeek godoc
// @Summary      Sessions of a week
// @Description  Sunday to Saturday window shifted by offset weeks from the current one
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        offset query int false "Week offset (0 = current, -1 = previous)"
// @Success      200 {object} response.SuccessResponse{data=dto.WeekResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /sessions/week [get]
func (h *ScheduleHandler) GetWeek(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid week offset")
			return
		}
		offset = parsed
	}

	week, err := h.scheduleService.GetWeek(c.Request.Context(), auth.UserID, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, week)
}

// GetHistoryPage godoc
// @Summary      Past sessions, newest first
// @Description  Cursor-paginated history grouped by local calendar date
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        cursor query string false "Opaque cursor from a previous page"
// @Param        limit query int false "Page size (default 20)"
// @Success      200 {object} response.SuccessResponse{data=dto.HistoryPageResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid cursor or limit"
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /sessions/history [get]
func (h *ScheduleHandler) GetHistoryPage(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid limit")
			return
		}
		limit = parsed
	}

	page, err := h.scheduleService.GetHistoryPage(c.Request.Context(), auth.UserID, c.Query("cursor"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, page)
}
