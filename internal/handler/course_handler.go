package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"participation-service/internal/response"
	"participation-service/internal/service"
)

type CourseHandler struct {
	courseService service.CourseService
}

func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// ListCourses godoc
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.CourseResponse}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	if _, ok := ExtractAuthData(c); !ok {
		return
	}

	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, courses)
}
