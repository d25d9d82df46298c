package projects

import (
	"context"

	"printflow/internal/domain"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Project, error)
}

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error)
	ListByAssignee(ctx context.Context, userID int64) ([]domain.Task, error)
}

// Workflow is the slice of the coordinator driven by this module.
type Workflow interface {
	CreateProject(ctx context.Context, orderID int64, managerID *int64) (*domain.Project, error)
	AssignManager(ctx context.Context, projectID, managerID int64) error
	AdvanceProject(ctx context.Context, projectID int64, target domain.ProjectStatus) (*domain.Project, error)
	CreateTask(ctx context.Context, task *domain.Task) error
	AssignTask(ctx context.Context, taskID, userID int64) error
	SetTaskStatus(ctx context.Context, taskID int64, target domain.TaskStatus) (*domain.Task, error)
}
