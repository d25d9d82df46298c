package auth

import (
	"errors"
	"net/http"

	"printflow/internal/domain"
	"printflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.SignUp)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		case errors.Is(err, domain.ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be one of the fixed staff roles")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create account")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrUserDisabled):
			response.Error(c, http.StatusForbidden, "USER_DISABLED", "Account has been deactivated")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"token_type":   "bearer",
		"user":         result.User,
	})
}
