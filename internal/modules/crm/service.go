package crm

import (
	"context"

	"printflow/internal/domain"
)

// Service is the lead tracker plus the thin order converter. All state
// transitions run through the workflow coordinator; this layer handles
// reads and the mutable-while-unconfirmed lead fields.
type Service struct {
	leads  LeadRepository
	orders OrderRepository
	flow   Workflow
}

func NewService(leads LeadRepository, orders OrderRepository, flow Workflow) *Service {
	return &Service{leads: leads, orders: orders, flow: flow}
}

func (s *Service) CreateLead(ctx context.Context, req CreateLeadRequest, createdBy int64) (*domain.Lead, error) {
	lead := &domain.Lead{
		CustomerName: req.CustomerName,
		Contact:      req.Contact,
		Details:      req.Details,
		Measurements: req.Measurements,
		Photos:       req.Photos,
		DeliveryDate: req.DeliveryDate,
		CreatedBy:    createdBy,
	}
	if err := s.flow.CreateLead(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *Service) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *Service) ListLeads(ctx context.Context, status *domain.LeadStatus) ([]domain.Lead, error) {
	return s.leads.List(ctx, status)
}

// UpdateLead edits an unconfirmed lead. Confirmed leads are frozen.
func (s *Service) UpdateLead(ctx context.Context, id int64, req UpdateLeadRequest) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.IsConfirmed() {
		return nil, ErrLeadLocked
	}

	if req.CustomerName != nil {
		lead.CustomerName = *req.CustomerName
	}
	if req.Contact != nil {
		lead.Contact = *req.Contact
	}
	if req.Details != nil {
		lead.Details = *req.Details
	}
	if req.Measurements != nil {
		lead.Measurements = req.Measurements
	}
	if req.Photos != nil {
		lead.Photos = req.Photos
	}
	if req.DeliveryDate != nil {
		lead.DeliveryDate = req.DeliveryDate
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// ConfirmLead promotes the lead into an order, exactly once.
func (s *Service) ConfirmLead(ctx context.Context, id int64) (*domain.Order, error) {
	return s.flow.ConfirmLead(ctx, id)
}

// DeleteLead cascades through the order, its projects and their tasks.
func (s *Service) DeleteLead(ctx context.Context, id int64) error {
	return s.flow.DeleteLead(ctx, id)
}

// GetOrderForLead returns the order derived from the lead, or ErrNotFound
// while the lead is unconfirmed.
func (s *Service) GetOrderForLead(ctx context.Context, leadID int64) (*domain.Order, error) {
	order, err := s.orders.GetByLeadID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}
