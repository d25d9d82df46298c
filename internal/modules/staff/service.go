package staff

import (
	"context"
	"errors"
	"time"

	"printflow/internal/domain"
	"printflow/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Service is the identity store: account management for the fixed role
// set. Accounts are soft-disabled rather than removed; hard deletion goes
// through the workflow coordinator which enforces the reference rules.
type Service struct {
	users UserRepository
	flow  Workflow
}

func NewService(users UserRepository, flow Workflow) *Service {
	return &Service{users: users, flow: flow}
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Deactivate soft-disables an account. Existing references stay intact.
func (s *Service) Deactivate(ctx context.Context, userID int64) error {
	return s.users.SetActive(ctx, userID, false)
}

func (s *Service) Reactivate(ctx context.Context, userID int64) error {
	return s.users.SetActive(ctx, userID, true)
}

// Delete removes an account. Rejected while any lead references the user
// as creator; manager and assignee references are nulled.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	return s.flow.DeleteUser(ctx, userID)
}

func (s *Service) HasRole(ctx context.Context, userID int64, role domain.Role) (bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.Role == role, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
