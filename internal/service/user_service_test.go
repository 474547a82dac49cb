package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"bizdesk/internal/domain"
	"bizdesk/internal/service"
	"bizdesk/mocks"
)

func TestUserService_Register_CreatesTenantAndAdmin(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	svc := service.NewUserService(userRepo, tenantRepo)

	tenantRepo.On("Create", mock.Anything, mock.MatchedBy(func(tn *domain.Tenant) bool {
		return tn.Name == "Acme Trading" && tn.Slug == "acme" && tn.IsActive
	})).Return(nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	tenant, user, err := svc.Register(context.Background(), service.RegisterInput{
		TenantName: "Acme Trading",
		TenantSlug: "ACME",
		Email:      "Owner@Acme.Test",
		Password:   "password123",
		FullName:   "Owner",
	})

	assert.NoError(t, err)
	assert.Equal(t, "acme", tenant.Slug)
	assert.Equal(t, "owner@acme.test", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	tenantRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestUserService_Create_DefaultsToMember(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	svc := service.NewUserService(userRepo, tenantRepo)

	tenantID := uuid.New()
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), &service.CreateUserInput{
		TenantID: tenantID,
		Email:    "someone@acme.test",
		Password: "password123",
		FullName: "Someone",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.Equal(t, tenantID, user.TenantID)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	svc := service.NewUserService(userRepo, tenantRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail)

	_, err := svc.Create(context.Background(), &service.CreateUserInput{
		TenantID: uuid.New(),
		Email:    "taken@acme.test",
		Password: "password123",
		FullName: "Someone",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_Update_SelectiveFields(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	svc := service.NewUserService(userRepo, tenantRepo)

	tenantID := uuid.New()
	userID := uuid.New()
	existing := &domain.User{
		ID: userID, TenantID: tenantID,
		Email: "someone@acme.test", FullName: "Old Name",
		Role: domain.RoleMember, IsActive: true,
	}
	userRepo.On("GetByID", mock.Anything, tenantID, userID).Return(existing, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	inactive := false
	updated, err := svc.Update(context.Background(), &service.UpdateUserInput{
		TenantID: tenantID,
		UserID:   userID,
		IsActive: &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Old Name", updated.FullName)
	assert.Equal(t, domain.RoleMember, updated.Role)
	assert.False(t, updated.IsActive)
}
