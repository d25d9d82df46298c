package crm

import (
	"context"
	"testing"

	"printflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

/* ==================== MOCKS ==================== */

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, status *domain.LeadStatus) ([]domain.Lead, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, l *domain.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetByLeadID(ctx context.Context, leadID int64) (*domain.Order, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) CreateLead(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockWorkflow) ConfirmLead(ctx context.Context, leadID int64) (*domain.Order, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockWorkflow) DeleteLead(ctx context.Context, leadID int64) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

/* ==================== TESTS ==================== */

func TestCreateLeadSetsCreator(t *testing.T) {
	flow := new(MockWorkflow)
	flow.On("CreateLead", mock.Anything, mock.AnythingOfType("*domain.Lead")).Return(nil)

	svc := NewService(new(MockLeadRepository), new(MockOrderRepository), flow)
	lead, err := svc.CreateLead(context.Background(), CreateLeadRequest{CustomerName: "Acme"}, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), lead.CreatedBy)
	assert.Equal(t, "Acme", lead.CustomerName)
}

func TestUpdateLeadAppliesOnlyProvidedFields(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("GetByID", mock.Anything, int64(1)).Return(&domain.Lead{
		ID:           1,
		CustomerName: "Acme",
		Contact:      "old@acme.io",
		Status:       domain.LeadStatusLead,
	}, nil)
	leads.On("Update", mock.Anything, mock.AnythingOfType("*domain.Lead")).Return(nil)

	svc := NewService(leads, new(MockOrderRepository), new(MockWorkflow))
	newContact := "new@acme.io"
	lead, err := svc.UpdateLead(context.Background(), 1, UpdateLeadRequest{Contact: &newContact})

	require.NoError(t, err)
	assert.Equal(t, "new@acme.io", lead.Contact)
	assert.Equal(t, "Acme", lead.CustomerName, "untouched field survives")
}

func TestUpdateLeadLockedAfterConfirm(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("GetByID", mock.Anything, int64(1)).Return(&domain.Lead{
		ID:     1,
		Status: domain.LeadStatusConfirmed,
	}, nil)

	svc := NewService(leads, new(MockOrderRepository), new(MockWorkflow))
	name := "Changed"
	_, err := svc.UpdateLead(context.Background(), 1, UpdateLeadRequest{CustomerName: &name})

	assert.ErrorIs(t, err, ErrLeadLocked)
	leads.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetOrderForLead(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByLeadID", mock.Anything, int64(1)).Return(&domain.Order{ID: 10, LeadID: 1}, nil)
	orders.On("GetByLeadID", mock.Anything, int64(2)).Return(nil, nil)

	svc := NewService(new(MockLeadRepository), orders, new(MockWorkflow))

	order, err := svc.GetOrderForLead(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), order.ID)

	_, err = svc.GetOrderForLead(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmLeadDelegatesToWorkflow(t *testing.T) {
	flow := new(MockWorkflow)
	flow.On("ConfirmLead", mock.Anything, int64(1)).Return(&domain.Order{ID: 10, LeadID: 1}, nil)
	flow.On("ConfirmLead", mock.Anything, int64(2)).Return(nil, domain.ErrAlreadyConfirmed)

	svc := NewService(new(MockLeadRepository), new(MockOrderRepository), flow)

	order, err := svc.ConfirmLead(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.LeadID)

	_, err = svc.ConfirmLead(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
}
