package repository

import (
	"context"
	"errors"
	"time"

	"printflow/internal/domain"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	tx := r.db.WithContext(ctx).First(&t, id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	var tasks []domain.Task
	tx := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&tasks)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tasks, nil
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID int64) ([]domain.Task, error) {
	var tasks []domain.Task
	tx := r.db.WithContext(ctx).
		Where("assignee_id = ?", userID).
		Order("updated_at DESC").
		Find(&tasks)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tasks, nil
}

func (r *TaskRepository) SetAssignee(ctx context.Context, id int64, userID *int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"assignee_id": userID, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus is a compare-and-swap against the expected current status
// and refreshes updated_at on success.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.TaskStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now().UTC()})
	return tx.RowsAffected, tx.Error
}

// CountIncomplete counts tasks under the project not yet completed. Read
// inside the same transaction as the project-status write so the
// all-tasks-completed check sees a consistent snapshot.
func (r *TaskRepository) CountIncomplete(ctx context.Context, projectID int64) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("project_id = ? AND status <> ?", projectID, domain.TaskCompleted).
		Count(&n)
	return n, tx.Error
}

// ClearAssigneeRefs nulls assignee_id on every task assigned to the user.
func (r *TaskRepository) ClearAssigneeRefs(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("assignee_id = ?", userID).
		Update("assignee_id", nil).Error
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&domain.Task{}).Error
}
