package workflow

import (
	"context"
	"errors"
	"time"

	"printflow/internal/domain"
	"printflow/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Config carries the two policy decisions the schema leaves open plus the
// bounded retry budget for optimistic conflicts.
type Config struct {
	// AutoCompleteProjects advances an active project to completed inside
	// the same transaction that completes its final task. Off by default:
	// a manager advances explicitly.
	AutoCompleteProjects bool
	// AllowStagingTasks permits task creation under pending projects.
	AllowStagingTasks bool
	// MaxRetries bounds internal retries on ErrConcurrentConflict.
	MaxRetries int
}

func DefaultConfig() Config {
	return Config{AllowStagingTasks: true, MaxRetries: 3}
}

// Notifier receives workflow events after the owning transaction commits.
// Implementations must not block.
type Notifier interface {
	Publish(kind string, payload interface{})
}

// Coordinator owns every mutating cross-entity operation of the pipeline.
// Each operation runs in a single transaction; status flips are
// compare-and-swap updates so two concurrent callers can never both win.
type Coordinator struct {
	db       *gorm.DB
	cfg      Config
	notifier Notifier
	log      *logrus.Entry
}

func NewCoordinator(db *gorm.DB, cfg Config, notifier Notifier) *Coordinator {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultConfig().MaxRetries
	}
	return &Coordinator{
		db:       db,
		cfg:      cfg,
		notifier: notifier,
		log:      logrus.WithField("component", "workflow"),
	}
}

// CreateLead validates the creator reference and inserts the lead with
// status "lead".
func (c *Coordinator) CreateLead(ctx context.Context, lead *domain.Lead) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := activeUser(ctx, tx, lead.CreatedBy); err != nil {
			return err
		}
		lead.Status = domain.LeadStatusLead
		lead.CreatedAt = time.Now().UTC()
		return repository.NewLeadRepository(tx).Create(ctx, lead)
	})
}

// ConfirmLead flips the lead to confirmed and creates its order as one
// atomic dual-write. Exactly one caller wins; every later or concurrent
// loser observes ErrAlreadyConfirmed.
func (c *Coordinator) ConfirmLead(ctx context.Context, leadID int64) (*domain.Order, error) {
	var order *domain.Order
	err := c.retry(func() error {
		order = nil
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			leads := repository.NewLeadRepository(tx)
			lead, err := leads.GetByID(ctx, leadID)
			if err != nil {
				return err
			}
			if lead.IsConfirmed() {
				return domain.ErrAlreadyConfirmed
			}
			rows, err := leads.Confirm(ctx, leadID)
			if err != nil {
				return err
			}
			if rows == 0 {
				return domain.ErrConcurrentConflict
			}
			order = &domain.Order{LeadID: leadID, ConfirmedAt: time.Now().UTC()}
			if err := repository.NewOrderRepository(tx).Create(ctx, order); err != nil {
				if repository.IsUniqueViolation(err) {
					return domain.ErrAlreadyConfirmed
				}
				return err
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	c.publish("lead.confirmed", map[string]interface{}{
		"lead_id":  leadID,
		"order_id": order.ID,
	})
	return order, nil
}

// DeleteLead removes the lead and everything it owns: its order, the
// order's projects and their tasks. Destructive, used for cleanup only.
func (c *Coordinator) DeleteLead(ctx context.Context, leadID int64) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		leads := repository.NewLeadRepository(tx)
		if _, err := leads.GetByID(ctx, leadID); err != nil {
			return err
		}
		orders := repository.NewOrderRepository(tx)
		order, err := orders.GetByLeadID(ctx, leadID)
		if err != nil {
			return err
		}
		if order != nil {
			projects := repository.NewProjectRepository(tx)
			tasks := repository.NewTaskRepository(tx)
			children, err := projects.ListByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			for _, p := range children {
				if err := tasks.DeleteByProject(ctx, p.ID); err != nil {
					return err
				}
			}
			if err := projects.DeleteByOrder(ctx, order.ID); err != nil {
				return err
			}
			if err := orders.Delete(ctx, order.ID); err != nil {
				return err
			}
		}
		return leads.Delete(ctx, leadID)
	})
}

// DeleteUser enforces the reference rules: rejected while any lead names
// the user as creator, otherwise manager and assignee references are
// nulled and the row removed.
func (c *Coordinator) DeleteUser(ctx context.Context, userID int64) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		if _, err := users.GetByID(ctx, userID); err != nil {
			return err
		}
		n, err := repository.NewLeadRepository(tx).CountByCreator(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrReferentialIntegrity
		}
		if err := repository.NewProjectRepository(tx).ClearManagerRefs(ctx, userID); err != nil {
			return err
		}
		if err := repository.NewTaskRepository(tx).ClearAssigneeRefs(ctx, userID); err != nil {
			return err
		}
		return users.Delete(ctx, userID)
	})
}

// CreateProject inserts a pending project under an existing order.
func (c *Coordinator) CreateProject(ctx context.Context, orderID int64, managerID *int64) (*domain.Project, error) {
	project := &domain.Project{OrderID: orderID, Status: domain.ProjectPending}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewOrderRepository(tx).GetByID(ctx, orderID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrReferentialIntegrity
			}
			return err
		}
		if managerID != nil {
			if err := c.checkManager(ctx, tx, *managerID); err != nil {
				return err
			}
			project.ManagerID = managerID
		}
		project.CreatedAt = time.Now().UTC()
		return repository.NewProjectRepository(tx).Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// AssignManager binds a project manager. The user must be active and hold
// the project_manager or admin role.
func (c *Coordinator) AssignManager(ctx context.Context, projectID, managerID int64) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projects := repository.NewProjectRepository(tx)
		if _, err := projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		if err := c.checkManager(ctx, tx, managerID); err != nil {
			return err
		}
		return projects.SetManager(ctx, projectID, &managerID)
	})
}

// AdvanceProject moves a project through its status machine. The
// all-tasks-completed gate for active->completed reads the task set inside
// the same transaction as the status write.
func (c *Coordinator) AdvanceProject(ctx context.Context, projectID int64, target domain.ProjectStatus) (*domain.Project, error) {
	var project *domain.Project
	err := c.retry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			projects := repository.NewProjectRepository(tx)
			p, err := projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			if err := CheckProjectTransition(p.Status, target); err != nil {
				return err
			}
			if target == domain.ProjectCompleted {
				n, err := repository.NewTaskRepository(tx).CountIncomplete(ctx, projectID)
				if err != nil {
					return err
				}
				if n > 0 {
					return domain.ErrTasksIncomplete
				}
			}
			rows, err := projects.UpdateStatus(ctx, projectID, p.Status, target)
			if err != nil {
				return err
			}
			if rows == 0 {
				return domain.ErrConcurrentConflict
			}
			p.Status = target
			project = p
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	c.publish("project.advanced", map[string]interface{}{
		"project_id": projectID,
		"status":     target,
	})
	return project, nil
}

// CreateTask inserts a pending task under a live project. Completed and
// cancelled parents never accept tasks; pending parents only when staging
// is allowed.
func (c *Coordinator) CreateTask(ctx context.Context, task *domain.Task) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repository.NewProjectRepository(tx).GetByID(ctx, task.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrReferentialIntegrity
			}
			return err
		}
		if p.Status.Terminal() {
			return domain.ErrInvalidProjectState
		}
		if p.Status == domain.ProjectPending && !c.cfg.AllowStagingTasks {
			return domain.ErrInvalidProjectState
		}
		if task.AssigneeID != nil {
			u, err := activeUser(ctx, tx, *task.AssigneeID)
			if err != nil {
				return err
			}
			if !u.Role.CanWorkOn(task.Type) {
				return domain.ErrRoleMismatch
			}
		}
		task.Status = domain.TaskPending
		task.UpdatedAt = time.Now().UTC()
		return repository.NewTaskRepository(tx).Create(ctx, task)
	})
}

// AssignTask binds an assignee whose role matches the task type (admin
// overrides any type).
func (c *Coordinator) AssignTask(ctx context.Context, taskID, userID int64) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)
		task, err := tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		u, err := activeUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !u.Role.CanWorkOn(task.Type) {
			return domain.ErrRoleMismatch
		}
		return tasks.SetAssignee(ctx, taskID, &userID)
	})
}

// SetTaskStatus advances a task one step. When the final task of an active
// project completes and auto-complete is enabled, the project advances in
// the same transaction.
func (c *Coordinator) SetTaskStatus(ctx context.Context, taskID int64, target domain.TaskStatus) (*domain.Task, error) {
	var task *domain.Task
	var projectCompleted int64
	err := c.retry(func() error {
		projectCompleted = 0
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			tasks := repository.NewTaskRepository(tx)
			t, err := tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			if err := CheckTaskTransition(t.Status, target); err != nil {
				return err
			}
			rows, err := tasks.UpdateStatus(ctx, taskID, t.Status, target)
			if err != nil {
				return err
			}
			if rows == 0 {
				return domain.ErrConcurrentConflict
			}
			t.Status = target
			task = t

			if target != domain.TaskCompleted || !c.cfg.AutoCompleteProjects {
				return nil
			}
			projects := repository.NewProjectRepository(tx)
			p, err := projects.GetByID(ctx, t.ProjectID)
			if err != nil {
				return err
			}
			if p.Status != domain.ProjectActive {
				return nil
			}
			n, err := tasks.CountIncomplete(ctx, p.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return nil
			}
			rows, err = projects.UpdateStatus(ctx, p.ID, domain.ProjectActive, domain.ProjectCompleted)
			if err != nil {
				return err
			}
			if rows == 0 {
				return domain.ErrConcurrentConflict
			}
			projectCompleted = p.ID
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	c.publish("task.updated", map[string]interface{}{
		"task_id":    taskID,
		"project_id": task.ProjectID,
		"status":     target,
	})
	if projectCompleted != 0 {
		c.log.WithField("project_id", projectCompleted).Info("project auto-completed")
		c.publish("project.advanced", map[string]interface{}{
			"project_id": projectCompleted,
			"status":     domain.ProjectCompleted,
		})
	}
	return task, nil
}

func (c *Coordinator) checkManager(ctx context.Context, tx *gorm.DB, userID int64) error {
	u, err := activeUser(ctx, tx, userID)
	if err != nil {
		return err
	}
	if !u.Role.CanManageProjects() {
		return domain.ErrUnknownUser
	}
	return nil
}

func activeUser(ctx context.Context, tx *gorm.DB, userID int64) (*domain.User, error) {
	u, err := repository.NewUserRepository(tx).GetActive(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnknownUser
	}
	return u, err
}

func (c *Coordinator) retry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		err = fn()
		if !errors.Is(err, domain.ErrConcurrentConflict) {
			return err
		}
		c.log.WithField("attempt", attempt).Warn("concurrent conflict, retrying")
	}
	return err
}

func (c *Coordinator) publish(kind string, payload interface{}) {
	if c.notifier == nil {
		return
	}
	c.notifier.Publish(kind, payload)
}
