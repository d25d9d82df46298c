package auth

import (
	"context"

	"printflow/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
