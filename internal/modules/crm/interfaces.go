package crm

import (
	"context"

	"printflow/internal/domain"
)

type LeadRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, status *domain.LeadStatus) ([]domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
}

type OrderRepository interface {
	GetByLeadID(ctx context.Context, leadID int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// Workflow is the slice of the coordinator the CRM drives.
type Workflow interface {
	CreateLead(ctx context.Context, lead *domain.Lead) error
	ConfirmLead(ctx context.Context, leadID int64) (*domain.Order, error)
	DeleteLead(ctx context.Context, leadID int64) error
}
