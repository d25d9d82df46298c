package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"printflow/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	FullName     string    `gorm:"column:full_name"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		FullName:     m.FullName,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Email:        strings.TrimSpace(strings.ToLower(u.Email)),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		FullName:     u.FullName,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// GetActive resolves an id to a user that has not been deactivated.
func (r *UserRepository) GetActive(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, domain.ErrUnknownUser
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []userModel
	if tx := r.db.WithContext(ctx).Order("id ASC").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	users := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Count(&n)
	return n, tx.Error
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
