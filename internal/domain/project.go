package domain

import "time"

type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s ProjectStatus) Terminal() bool {
	return s == ProjectCompleted || s == ProjectCancelled
}

type Project struct {
	ID        int64         `json:"id"`
	OrderID   int64         `json:"order_id" gorm:"index"`
	Status    ProjectStatus `json:"status"`
	ManagerID *int64        `json:"manager_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
