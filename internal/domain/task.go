package domain

import (
	"encoding/json"
	"time"
)

type TaskType string

const (
	TaskDesign    TaskType = "design"
	TaskPrinting  TaskType = "printing"
	TaskLogistics TaskType = "logistics"
)

func (t TaskType) Valid() bool {
	return t == TaskDesign || t == TaskPrinting || t == TaskLogistics
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task is an atomic unit of work under a project. Type is fixed at
// creation; status only moves forward.
type Task struct {
	ID         int64           `json:"id"`
	ProjectID  int64           `json:"project_id" gorm:"index"`
	Type       TaskType        `json:"type"`
	AssigneeID *int64          `json:"assignee_id,omitempty" gorm:"index"`
	Status     TaskStatus      `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty" gorm:"type:json"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
