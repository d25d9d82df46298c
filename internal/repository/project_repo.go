package repository

import (
	"context"
	"errors"

	"printflow/internal/domain"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	tx := r.db.WithContext(ctx).First(&p, id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *ProjectRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Project, error) {
	var projects []domain.Project
	tx := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&projects)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return projects, nil
}

func (r *ProjectRepository) SetManager(ctx context.Context, id int64, managerID *int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Update("manager_id", managerID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus is a compare-and-swap against the expected current status.
// Zero rows affected signals a concurrent writer (or a vanished row).
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.ProjectStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return tx.RowsAffected, tx.Error
}

// ClearManagerRefs nulls manager_id on every project managed by the user.
func (r *ProjectRepository) ClearManagerRefs(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("manager_id = ?", userID).
		Update("manager_id", nil).Error
}

func (r *ProjectRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&domain.Project{}).Error
}
