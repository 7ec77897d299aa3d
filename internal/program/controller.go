package program

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"festly/internal/shared/utils/response"
)

type Controller interface {
	ListConferences(c *gin.Context)
	GetConference(c *gin.Context)
	ListMyProgram(c *gin.Context)
	JoinProgram(c *gin.Context)
	LeaveProgram(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// ListConferences godoc
// @Summary List conference sessions ordered by start time
// @Tags program
// @Produce json
// @Router /conferences [get]
func (ctrl *controller) ListConferences(c *gin.Context) {
	conferences, err := ctrl.service.ListConferences(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch conferences", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Conferences retrieved successfully", conferences, nil)
}

// GetConference godoc
// @Summary Get one conference session
// @Tags program
// @Produce json
// @Param id path string true "conference id"
// @Router /conferences/{id} [get]
func (ctrl *controller) GetConference(c *gin.Context) {
	conferenceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid conference ID", nil, nil)
		return
	}

	conference, err := ctrl.service.GetConference(c.Request.Context(), conferenceID)
	if err != nil {
		if errors.Is(err, ErrConferenceNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Conference not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch conference", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Conference retrieved successfully", conference, nil)
}

// ListMyProgram godoc
// @Summary List the caller's program
// @Tags program
// @Produce json
// @Security BearerAuth
// @Router /program [get]
func (ctrl *controller) ListMyProgram(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conferences, err := ctrl.service.ListUserProgram(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch program", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Program retrieved successfully", conferences, nil)
}

// JoinProgram godoc
// @Summary Add a conference to the caller's program
// @Tags program
// @Produce json
// @Security BearerAuth
// @Param conferenceId path string true "conference id"
// @Router /program/{conferenceId} [post]
func (ctrl *controller) JoinProgram(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conferenceID, err := uuid.Parse(c.Param("conferenceId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid conference ID", nil, nil)
		return
	}

	if err := ctrl.service.JoinProgram(c.Request.Context(), userID, conferenceID); err != nil {
		status, message := joinErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Conference added to your program", nil, nil)
}

// LeaveProgram godoc
// @Summary Remove a conference from the caller's program
// @Tags program
// @Produce json
// @Security BearerAuth
// @Param conferenceId path string true "conference id"
// @Router /program/{conferenceId} [delete]
func (ctrl *controller) LeaveProgram(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conferenceID, err := uuid.Parse(c.Param("conferenceId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid conference ID", nil, nil)
		return
	}

	if err := ctrl.service.LeaveProgram(c.Request.Context(), userID, conferenceID); err != nil {
		if errors.Is(err, ErrProgramItemNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Conference is not in your program", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update program", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Conference removed from your program", nil, nil)
}

func joinErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrConferenceNotFound):
		return http.StatusNotFound, "Conference not found"
	case errors.Is(err, ErrSessionFull):
		return http.StatusConflict, "This session is full"
	case errors.Is(err, ErrNoValidTicketForDate):
		return http.StatusForbidden, "No valid ticket for this date"
	case errors.Is(err, ErrAlreadyInProgram):
		return http.StatusConflict, "Conference already in your program"
	default:
		return http.StatusInternalServerError, "Failed to join program"
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}
