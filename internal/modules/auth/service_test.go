package auth

import (
	"context"
	"testing"

	"printflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

/* ==================== MOCKS ==================== */

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

/* ==================== TESTS ==================== */

func TestSignUpFirstUserBecomesAdmin(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Count", mock.Anything).Return(int64(0), nil)
	users.On("GetByEmail", mock.Anything, "boss@x.io").Return(nil, domain.ErrNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewService(users, new(MockTokenIssuer))
	user, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:    "boss@x.io",
		Password: "secret123",
		Role:     "sales",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	users.AssertExpectations(t)
}

func TestSignUpInvalidRole(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Count", mock.Anything).Return(int64(3), nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:    "new@x.io",
		Password: "secret123",
		Role:     "wizard",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Count", mock.Anything).Return(int64(1), nil)
	users.On("GetByEmail", mock.Anything, "taken@x.io").Return(&domain.User{ID: 7, Email: "taken@x.io"}, nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:    "taken@x.io",
		Password: "secret123",
		Role:     "designer",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSignUpHashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Count", mock.Anything).Return(int64(1), nil)
	users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	var created *domain.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:    "hr@x.io",
		Password: "secret123",
		Role:     "hr",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &domain.User{ID: 5, Email: "pm@x.io", PasswordHash: string(hash), Role: domain.RoleProjectManager, IsActive: true}

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "pm@x.io").Return(user, nil)

	tokens := new(MockTokenIssuer)
	tokens.On("GenerateToken", int64(5), "project_manager").Return("token-abc", nil)

	svc := NewService(users, tokens)
	result, err := svc.Login(context.Background(), LoginRequest{Email: "pm@x.io", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "token-abc", result.AccessToken)
	assert.Equal(t, int64(5), result.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &domain.User{ID: 5, Email: "pm@x.io", PasswordHash: string(hash), IsActive: true}

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "pm@x.io").Return(user, nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, err := svc.Login(context.Background(), LoginRequest{Email: "pm@x.io", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@x.io").Return(nil, domain.ErrNotFound)

	svc := NewService(users, new(MockTokenIssuer))
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@x.io", Password: "whatever"})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &domain.User{ID: 5, Email: "pm@x.io", PasswordHash: string(hash), IsActive: false}

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "pm@x.io").Return(user, nil)

	svc := NewService(users, new(MockTokenIssuer))
	_, err := svc.Login(context.Background(), LoginRequest{Email: "pm@x.io", Password: "secret123"})

	assert.ErrorIs(t, err, ErrUserDisabled)
}
