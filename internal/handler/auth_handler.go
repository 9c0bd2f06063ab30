package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
	"github.com/conceptlens/conceptlens-backend/internal/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Login godoc
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Me godoc
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
