package staff

import (
	"context"
	"testing"

	"printflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

/* ==================== MOCKS ==================== */

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

/* ==================== TESTS ==================== */

func TestCreateUserValidatesRole(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockWorkflow))

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email:    "x@x.io",
		Password: "secret123",
		Role:     "janitor",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "taken@x.io").Return(&domain.User{ID: 1}, nil)

	svc := NewService(users, new(MockWorkflow))
	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email:    "taken@x.io",
		Password: "secret123",
		Role:     "designer",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestCreateUserSuccess(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "new@x.io").Return(nil, domain.ErrNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewService(users, new(MockWorkflow))
	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email:    "new@x.io",
		Password: "secret123",
		Role:     "logistics",
		FullName: "New Hire",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleLogistics, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestDeleteDelegatesReferenceRules(t *testing.T) {
	flow := new(MockWorkflow)
	flow.On("DeleteUser", mock.Anything, int64(9)).Return(domain.ErrReferentialIntegrity)

	svc := NewService(new(MockUserRepository), flow)
	err := svc.Delete(context.Background(), 9)

	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

func TestDeactivateReactivate(t *testing.T) {
	users := new(MockUserRepository)
	users.On("SetActive", mock.Anything, int64(4), false).Return(nil)
	users.On("SetActive", mock.Anything, int64(4), true).Return(nil)

	svc := NewService(users, new(MockWorkflow))
	require.NoError(t, svc.Deactivate(context.Background(), 4))
	require.NoError(t, svc.Reactivate(context.Background(), 4))
	users.AssertExpectations(t)
}

func TestHasRole(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleHR}, nil)

	svc := NewService(users, new(MockWorkflow))

	ok, err := svc.HasRole(context.Background(), 2, domain.RoleHR)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasRole(context.Background(), 2, domain.RoleSales)
	require.NoError(t, err)
	assert.False(t, ok)
}
