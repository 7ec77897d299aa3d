package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"festly/internal/shared/utils/response"
)

type Controller interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Me(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "registration payload"
// @Router /auth/register [post]
func (ctrl *controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := ctrl.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.RespondJSON(c, "error", http.StatusConflict, "An account with this email already exists", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Registration failed", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Account created successfully", resp, nil)
}

// Login godoc
// @Summary Authenticate and obtain a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Router /auth/login [post]
func (ctrl *controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Login failed", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Logged in successfully", resp, nil)
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Router /auth/me [get]
func (ctrl *controller) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	profile, err := ctrl.service.GetProfile(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "User not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load profile", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Profile retrieved successfully", profile, nil)
}
