package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// RegisterInput is the DTO for tenant signup: a new tenant plus its first
// admin user.
type RegisterInput struct {
	TenantName string `json:"tenant_name" binding:"required"`
	TenantSlug string `json:"tenant_slug" binding:"required,alphanum"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
}

// CreateUserInput is the DTO for an admin creating a user.
type CreateUserInput struct {
	TenantID uuid.UUID
	Email    string
	Password string
	FullName string
	Role     domain.UserRole
}

// UpdateUserInput is the DTO for updating a user.
type UpdateUserInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	FullName string
	Role     domain.UserRole
	IsActive *bool
}

// UserService defines the user management contract.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Tenant, *domain.User, error)
	Create(ctx context.Context, input *CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, input *UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error
}

type userService struct {
	userRepo   port.UserRepository
	tenantRepo port.TenantRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository, tenantRepo port.TenantRepository) UserService {
	return &userService{userRepo: userRepo, tenantRepo: tenantRepo}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.Tenant, *domain.User, error) {
	tenant := &domain.Tenant{
		Name:     input.TenantName,
		Slug:     strings.ToLower(input.TenantSlug),
		IsActive: true,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, nil, fmt.Errorf("user.Register: %w", err)
	}

	user, err := s.createUser(ctx, tenant.ID, input.Email, input.Password, input.FullName, domain.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}
	return tenant, user, nil
}

func (s *userService) Create(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	return s.createUser(ctx, input.TenantID, input.Email, input.Password, input.FullName, role)
}

func (s *userService) createUser(ctx context.Context, tenantID uuid.UUID, email, password, fullName string, role domain.UserRole) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		TenantID:     tenantID,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, tenantID, userID)
}

func (s *userService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	return s.userRepo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *userService) Update(ctx context.Context, input *UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.userRepo.Delete(ctx, tenantID, userID)
}
