package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
	"github.com/fleetnexa/fleetnexa-server/internal/security"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

func newAuthService(tenantRepo *MockTenantRepo, userRepo *MockUserRepo) service.AuthService {
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)
	return service.NewAuthService(tenantRepo, userRepo, tokens)
}

func TestAuthService_SignupTenant(t *testing.T) {
	ctx := context.Background()

	input := service.SignupInput{
		TenantName: "Acme Rentals",
		TenantCode: "Acme",
		Currency:   "USD",
		UserName:   "Jo Admin",
		Email:      "JO@acme.test",
		Password:   "supersecret",
	}

	t.Run("Success", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		userRepo := new(MockUserRepo)
		svc := newAuthService(tenantRepo, userRepo)

		tenantRepo.On("Create", ctx, mock.MatchedBy(func(tn *domain.Tenant) bool {
			return tn.Code == "acme" && tn.BillingUnit == domain.BillingUnitDay
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Tenant).ID = 1
		}).Return(nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			ok := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecret")) == nil
			return u.TenantID == 1 && u.Role == domain.UserRoleAdmin && u.Email == "jo@acme.test" && ok
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 5
		}).Return(nil).Once()

		tenant, user, token, err := svc.SignupTenant(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, "acme", tenant.Code)
		assert.Equal(t, int64(5), user.ID)
		assert.NotEmpty(t, token)
		tenantRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc := newAuthService(new(MockTenantRepo), new(MockUserRepo))
		bad := input
		bad.Password = "short"

		_, _, _, err := svc.SignupTenant(ctx, bad)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		svc := newAuthService(tenantRepo, new(MockUserRepo))
		tenantRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, _, _, err := svc.SignupTenant(ctx, input)
		assert.True(t, apperr.IsConflict(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)

	t.Run("Success", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		userRepo := new(MockUserRepo)
		svc := newAuthService(tenantRepo, userRepo)

		userRepo.On("GetByEmail", ctx, "jo@acme.test").Return(&domain.User{
			ID: 5, TenantID: 1, Email: "jo@acme.test", PasswordHash: string(hash), Role: domain.UserRoleAdmin,
		}, nil).Once()
		tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()

		user, token, err := svc.Login(ctx, "JO@acme.test", "supersecret")
		assert.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(new(MockTenantRepo), userRepo)
		userRepo.On("GetByEmail", ctx, "jo@acme.test").Return(&domain.User{
			ID: 5, PasswordHash: string(hash),
		}, nil).Once()

		_, _, err := svc.Login(ctx, "jo@acme.test", "wrong")
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("UnknownEmailLooksLikeBadCredentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(new(MockTenantRepo), userRepo)
		userRepo.On("GetByEmail", ctx, "nobody@acme.test").Return(nil, repository.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "nobody@acme.test", "whatever")
		assert.True(t, apperr.IsValidation(err))
	})
}
