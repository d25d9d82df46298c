package staff

import (
	"context"

	"printflow/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// Workflow is the slice of the coordinator the identity module needs:
// user deletion crosses entity boundaries (restrict / set-null rules).
type Workflow interface {
	DeleteUser(ctx context.Context, userID int64) error
}
