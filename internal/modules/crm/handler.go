package crm

import (
	"errors"
	"net/http"
	"strconv"

	"printflow/internal/domain"
	"printflow/internal/pkg/response"
	"printflow/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.CreateLead)
	rg.GET("/leads", h.ListLeads)
	rg.GET("/leads/:id", h.GetLead)
	rg.PATCH("/leads/:id", h.UpdateLead)
	rg.POST("/leads/:id/confirm", h.ConfirmLead)
	rg.DELETE("/leads/:id", h.DeleteLead)
	rg.GET("/leads/:id/order", h.GetOrderForLead)
	rg.GET("/orders", h.ListOrders)
}

func (h *Handler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", fields)
		return
	}

	lead, err := h.service.CreateLead(c.Request.Context(), req, c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_USER", "Creator is not an active user")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create lead")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"lead": lead})
}

func (h *Handler) ListLeads(c *gin.Context) {
	var status *domain.LeadStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.LeadStatus(raw)
		status = &s
	}
	leads, err := h.service.ListLeads(c.Request.Context(), status)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list leads")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leads": leads})
}

func (h *Handler) GetLead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lead, err := h.service.GetLead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch lead")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lead": lead})
}

func (h *Handler) UpdateLead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", fields)
		return
	}

	lead, err := h.service.UpdateLead(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
		case errors.Is(err, ErrLeadLocked):
			response.Error(c, http.StatusConflict, "LEAD_LOCKED", "Confirmed leads cannot be edited")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update lead")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lead": lead})
}

func (h *Handler) ConfirmLead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.service.ConfirmLead(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
		case errors.Is(err, domain.ErrAlreadyConfirmed):
			response.Error(c, http.StatusConflict, "ALREADY_CONFIRMED", "Lead is already confirmed")
		case errors.Is(err, domain.ErrConcurrentConflict):
			response.Error(c, http.StatusConflict, "CONFLICT", "Lead was modified concurrently, retry")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to confirm lead")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

func (h *Handler) DeleteLead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteLead(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete lead")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) GetOrderForLead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrderForLead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead has no order")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch order")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": order})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list orders")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
