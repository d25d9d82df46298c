package projects

import (
	"context"

	"printflow/internal/domain"
)

// Service covers project management and task scheduling. Mutations go
// through the workflow coordinator; reads hit the repositories directly.
type Service struct {
	projects ProjectRepository
	tasks    TaskRepository
	flow     Workflow
}

func NewService(projects ProjectRepository, tasks TaskRepository, flow Workflow) *Service {
	return &Service{projects: projects, tasks: tasks, flow: flow}
}

func (s *Service) CreateProject(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	return s.flow.CreateProject(ctx, req.OrderID, req.ManagerID)
}

func (s *Service) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *Service) ListProjectsByOrder(ctx context.Context, orderID int64) ([]domain.Project, error) {
	return s.projects.ListByOrder(ctx, orderID)
}

func (s *Service) AssignManager(ctx context.Context, projectID, managerID int64) error {
	return s.flow.AssignManager(ctx, projectID, managerID)
}

func (s *Service) AdvanceProject(ctx context.Context, projectID int64, target domain.ProjectStatus) (*domain.Project, error) {
	return s.flow.AdvanceProject(ctx, projectID, target)
}

func (s *Service) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	taskType := domain.TaskType(req.Type)
	if !taskType.Valid() {
		return nil, ErrInvalidTaskType
	}
	task := &domain.Task{
		ProjectID:  req.ProjectID,
		Type:       taskType,
		AssigneeID: req.AssigneeID,
		Payload:    req.Payload,
	}
	if err := s.flow.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *Service) ListTasksByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

// ListTasksByAssignee backs the per-worker task view (designers, printing
// and logistics staff see their own queue).
func (s *Service) ListTasksByAssignee(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByAssignee(ctx, userID)
}

func (s *Service) AssignTask(ctx context.Context, taskID, userID int64) error {
	return s.flow.AssignTask(ctx, taskID, userID)
}

func (s *Service) SetTaskStatus(ctx context.Context, taskID int64, target domain.TaskStatus) (*domain.Task, error) {
	return s.flow.SetTaskStatus(ctx, taskID, target)
}
