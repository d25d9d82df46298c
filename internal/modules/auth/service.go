package auth

import (
	"context"
	"errors"
	"time"

	"printflow/internal/domain"
	"printflow/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users UserRepository
	jwt   TokenIssuer
}

func NewService(users UserRepository, jwt TokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

// SignUp registers a staff account. The very first account becomes admin
// regardless of the requested role; afterwards the role must be one of the
// fixed set.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	role := domain.Role(req.Role)
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		role = domain.RoleAdmin
	} else if !role.Valid() {
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

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}
