package staff

import (
	"errors"
	"net/http"
	"strconv"

	"printflow/internal/domain"
	"printflow/internal/middleware"
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
	rg.GET("/staff", h.List)
	rg.POST("/staff", h.CreateUser)
	rg.POST("/staff/:id/deactivate", h.Deactivate)
	rg.POST("/staff/:id/reactivate", h.Reactivate)
	rg.DELETE("/staff/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list staff")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be one of the fixed staff roles")
		case errors.Is(err, domain.ErrDuplicateEmail):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to deactivate user")
		return
	}
	// Drop the cached identity so in-flight tokens stop working now, not
	// when the cache TTL expires.
	middleware.InvalidateUser(id)
	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

func (h *Handler) Reactivate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.Reactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reactivate user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reactivated": true})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, domain.ErrReferentialIntegrity):
			response.Error(c, http.StatusConflict, "USER_REFERENCED", "User is referenced by existing leads")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
		}
		return
	}
	middleware.InvalidateUser(id)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return 0, false
	}
	return id, true
}
