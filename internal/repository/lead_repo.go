package repository

import (
	"context"
	"errors"

	"printflow/internal/domain"

	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var l domain.Lead
	tx := r.db.WithContext(ctx).First(&l, id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context, status *domain.LeadStatus) ([]domain.Lead, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var leads []domain.Lead
	if tx := q.Find(&leads); tx.Error != nil {
		return nil, tx.Error
	}
	return leads, nil
}

// Update persists the mutable lead fields. Status is never touched here;
// only the confirm CAS below flips it.
func (r *LeadRepository) Update(ctx context.Context, l *domain.Lead) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Lead{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"customer_name": l.CustomerName,
			"contact":       l.Contact,
			"details":       l.Details,
			"measurements":  l.Measurements,
			"photos":        l.Photos,
			"delivery_date": l.DeliveryDate,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Confirm flips status lead->confirmed as a compare-and-swap. Returns the
// number of rows updated; zero means the lead is gone, already confirmed or
// was confirmed by a concurrent caller.
func (r *LeadRepository) Confirm(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Lead{}).
		Where("id = ? AND status = ?", id, domain.LeadStatusLead).
		Update("status", domain.LeadStatusConfirmed)
	return tx.RowsAffected, tx.Error
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Lead{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCreator reports how many leads reference the user via created_by.
// User deletion is rejected while this is non-zero.
func (r *LeadRepository) CountByCreator(ctx context.Context, userID int64) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Lead{}).
		Where("created_by = ?", userID).
		Count(&n)
	return n, tx.Error
}
