package repository

import (
	"context"
	"errors"

	"printflow/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	tx := r.db.WithContext(ctx).First(&o, id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}

// GetByLeadID returns (nil, nil) when the lead has no order yet.
func (r *OrderRepository) GetByLeadID(ctx context.Context, leadID int64) (*domain.Order, error) {
	var o domain.Order
	tx := r.db.WithContext(ctx).Where("lead_id = ?", leadID).First(&o)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if tx := r.db.WithContext(ctx).Order("confirmed_at DESC").Find(&orders); tx.Error != nil {
		return nil, tx.Error
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Order{}, id).Error
}
