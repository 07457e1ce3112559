package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"participation-service/internal/dto"
	"participation-service/internal/response"
	"participation-service/internal/service"
)

type ParticipationHandler struct {
	participationService service.ParticipationService
}

func NewParticipationHandler(participationService service.ParticipationService) *ParticipationHandler {
	initValidator()
	return &ParticipationHandler{
		participationService: participationService,
	}
}

// RecordParticipation godoc
// @Summary      Record participation for a session
// @Description  Creates the caller's participation record for a session, or replaces it if one already exists
// @Tags         participations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RecordParticipationRequest true "Participation"
// @Success      200 {object} response.SuccessResponse{data=dto.ParticipationResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid body or quality"
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Session not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /participations [post]
func (h *ParticipationHandler) RecordParticipation(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.RecordParticipationRequest
	if !bindJSON(c, &req) {
		return
	}

	participation, err := h.participationService.RecordParticipation(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, participation)
}

// UpdateParticipation godoc
// @Summary      Update a participation record
// @Description  Overwrites participated, quality and note on one of the caller's records
// @Tags         participations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        participationId path string true "Participation ID (UUID)"
// @Param        request body dto.UpdateParticipationRequest true "Participation"
// @Success      200 {object} response.SuccessResponse{data=dto.ParticipationResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Participation not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /participations/{participationId} [put]
func (h *ParticipationHandler) UpdateParticipation(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	participationID, ok := parseUUIDParam(c, "participationId", "Invalid participation ID")
	if !ok {
		return
	}

	var req dto.UpdateParticipationRequest
	if !bindJSON(c, &req) {
		return
	}

	participation, err := h.participationService.UpdateParticipation(c.Request.Context(), auth.UserID, participationID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, participation)
}

// DeleteParticipation godoc
// @Summary      Delete a participation record
// @Tags         participations
// @Produce      json
// @Security     BearerAuth
// @Param        participationId path string true "Participation ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Participation not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /participations/{participationId} [delete]
func (h *ParticipationHandler) DeleteParticipation(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	participationID, ok := parseUUIDParam(c, "participationId", "Invalid participation ID")
	if !ok {
		return
	}

	if err := h.participationService.DeleteParticipation(c.Request.Context(), auth.UserID, participationID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"success": true})
}

// GetSessionParticipation godoc
// @Summary      Get the caller's participation for a session
// @Tags         participations
// @Produce      json
// @Security     BearerAuth
// @Param        sessionId path string true "Session ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ParticipationResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "No participation recorded"
// @Failure      500 {object} response.ErrorResponse
// @Router       /sessions/{sessionId}/participation [get]
func (h *ParticipationHandler) GetSessionParticipation(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	sessionID, ok := parseUUIDParam(c, "sessionId", "Invalid session ID")
	if !ok {
		return
	}

	participation, err := h.participationService.GetSessionParticipation(c.Request.Context(), auth.UserID, sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, participation)
}
