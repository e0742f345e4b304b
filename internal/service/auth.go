package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
	"github.com/fleetnexa/fleetnexa-server/internal/security"
)

type authService struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
	tokens     security.TokenManager
}

func NewAuthService(tenantRepo repository.TenantRepository, userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		tokens:     tokens,
	}
}

func (s *authService) SignupTenant(ctx context.Context, in SignupInput) (*domain.Tenant, *domain.User, string, error) {
	in.TenantCode = strings.ToLower(strings.TrimSpace(in.TenantCode))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.TenantName == "" || in.TenantCode == "" {
		return nil, nil, "", apperr.Validation("tenant name and code are required")
	}
	if in.Email == "" || in.UserName == "" {
		return nil, nil, "", apperr.Validation("admin name and email are required")
	}
	if len(in.Password) < 8 {
		return nil, nil, "", apperr.Validation("password must be at least 8 characters")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	tenant := &domain.Tenant{
		Code:        in.TenantCode,
		Name:        in.TenantName,
		Currency:    in.Currency,
		BillingUnit: domain.BillingUnitDay,
		CancellationPolicy: domain.CancellationPolicy{
			Type: domain.CancellationPolicyNone,
		},
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, nil, "", mapRepoErr(err, "tenant code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", apperr.Internal(err)
	}

	user := &domain.User{
		TenantID:     tenant.ID,
		Name:         in.UserName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.UserRoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, "", mapRepoErr(err, "user email")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, tenant.ID, tenant.Code, user.Email, string(user.Role))
	if err != nil {
		return nil, nil, "", apperr.Internal(err)
	}
	return tenant, user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperr.Validation("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.Validation("invalid credentials")
		}
		return nil, "", apperr.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Validation("invalid credentials")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, "", mapRepoErr(err, "tenant")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, tenant.ID, tenant.Code, user.Email, string(user.Role))
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return user, token, nil
}
