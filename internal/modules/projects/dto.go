package projects

import "encoding/json"

type CreateProjectRequest struct {
	OrderID   int64  `json:"order_id" binding:"required"`
	ManagerID *int64 `json:"manager_id"`
}

type AssignManagerRequest struct {
	ManagerID int64 `json:"manager_id" binding:"required"`
}

type AdvanceProjectRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active completed cancelled"`
}

type CreateTaskRequest struct {
	ProjectID  int64           `json:"project_id" binding:"required"`
	Type       string          `json:"type" binding:"required"`
	AssigneeID *int64          `json:"assignee_id"`
	Payload    json.RawMessage `json:"payload"`
}

type AssignTaskRequest struct {
	AssigneeID int64 `json:"assignee_id" binding:"required"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}
