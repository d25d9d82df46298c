package projects

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.POST("/projects", h.CreateProject)
	rg.GET("/projects/:id", h.GetProject)
	rg.POST("/projects/:id/manager", h.AssignManager)
	rg.POST("/projects/:id/advance", h.AdvanceProject)
	rg.GET("/projects/:id/tasks", h.ListProjectTasks)
	rg.POST("/tasks", h.CreateTask)
	rg.GET("/tasks/my", h.ListMyTasks)
	rg.GET("/tasks/:id", h.GetTask)
	rg.POST("/tasks/:id/assign", h.AssignTask)
	rg.POST("/tasks/:id/status", h.UpdateTaskStatus)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	project, err := h.service.CreateProject(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReferentialIntegrity):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_ORDER", "Order does not exist")
		case errors.Is(err, domain.ErrUnknownUser):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_USER", "Manager must be an active project_manager or admin")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create project")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"project": project})
}

func (h *Handler) GetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch project")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": project})
}

func (h *Handler) AssignManager(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.AssignManager(c.Request.Context(), id, req.ManagerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
		case errors.Is(err, domain.ErrUnknownUser):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_USER", "Manager must be an active project_manager or admin")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign manager")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assigned": true})
}

func (h *Handler) AdvanceProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req AdvanceProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	project, err := h.service.AdvanceProject(c.Request.Context(), id, domain.ProjectStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
		case errors.Is(err, domain.ErrTerminalState):
			response.Error(c, http.StatusConflict, "TERMINAL_STATE", "Project status is terminal")
		case errors.Is(err, domain.ErrTasksIncomplete):
			response.Error(c, http.StatusConflict, "TASKS_INCOMPLETE", "Project still has incomplete tasks")
		case errors.Is(err, domain.ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
		case errors.Is(err, domain.ErrConcurrentConflict):
			response.Error(c, http.StatusConflict, "CONFLICT", "Project was modified concurrently, retry")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to advance project")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": project})
}

func (h *Handler) ListProjectTasks(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tasks, err := h.service.ListTasksByProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	task, err := h.service.CreateTask(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTaskType):
			response.Error(c, http.StatusBadRequest, "INVALID_TASK_TYPE", "Task type must be design, printing or logistics")
		case errors.Is(err, domain.ErrReferentialIntegrity):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_PROJECT", "Project does not exist")
		case errors.Is(err, domain.ErrInvalidProjectState):
			response.Error(c, http.StatusConflict, "INVALID_PROJECT_STATE", "Project does not accept tasks in its current status")
		case errors.Is(err, domain.ErrUnknownUser):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_USER", "Assignee is not an active user")
		case errors.Is(err, domain.ErrRoleMismatch):
			response.Error(c, http.StatusBadRequest, "ROLE_MISMATCH", "Assignee role does not match the task type")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create task")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"task": task})
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch task")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"task": task})
}

func (h *Handler) ListMyTasks(c *gin.Context) {
	tasks, err := h.service.ListTasksByAssignee(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) AssignTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.AssignTask(c.Request.Context(), id, req.AssigneeID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
		case errors.Is(err, domain.ErrUnknownUser):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_USER", "Assignee is not an active user")
		case errors.Is(err, domain.ErrRoleMismatch):
			response.Error(c, http.StatusBadRequest, "ROLE_MISMATCH", "Assignee role does not match the task type")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign task")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assigned": true})
}

func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	task, err := h.service.SetTaskStatus(c.Request.Context(), id, domain.TaskStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Task status only moves forward")
		case errors.Is(err, domain.ErrConcurrentConflict):
			response.Error(c, http.StatusConflict, "CONFLICT", "Task was modified concurrently, retry")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update task")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"task": task})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
