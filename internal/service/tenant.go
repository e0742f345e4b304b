package service

import (
	"context"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type tenantService struct {
	tenantRepo  repository.TenantRepository
	vehicleRepo repository.VehicleRepository
}

func NewTenantService(tenantRepo repository.TenantRepository, vehicleRepo repository.VehicleRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo, vehicleRepo: vehicleRepo}
}

func (s *tenantService) Get(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "tenant")
	}
	return t, nil
}

func (s *tenantService) UpdateSettings(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	current, err := s.tenantRepo.GetByID(ctx, t.ID)
	if err != nil {
		return nil, mapRepoErr(err, "tenant")
	}

	switch t.BillingUnit {
	case domain.BillingUnitDay, domain.BillingUnitWeek, domain.BillingUnitMonth:
	default:
		return nil, apperr.Validation("invalid billing unit %q", t.BillingUnit)
	}
	switch t.CancellationPolicy.Type {
	case domain.CancellationPolicyNone, domain.CancellationPolicyPercent, domain.CancellationPolicyFixed:
	default:
		return nil, apperr.Validation("invalid cancellation policy type %q", t.CancellationPolicy.Type)
	}
	if t.CancellationPolicy.Value.IsNegative() {
		return nil, apperr.Validation("cancellation policy value cannot be negative")
	}
	if t.SecurityDeposit.IsNegative() {
		return nil, apperr.Validation("security deposit cannot be negative")
	}
	if t.Name == "" {
		return nil, apperr.Validation("tenant name is required")
	}

	// Code is immutable; it is baked into issued tokens and document numbers.
	current.Name = t.Name
	current.Currency = t.Currency
	current.Address = t.Address
	current.BillingUnit = t.BillingUnit
	current.CancellationPolicy = t.CancellationPolicy
	current.SecurityDeposit = t.SecurityDeposit

	if err := s.tenantRepo.Update(ctx, current); err != nil {
		return nil, mapRepoErr(err, "tenant")
	}
	return current, nil
}

func (s *tenantService) Storefront(ctx context.Context, tenantCode string) (*domain.Tenant, []domain.Vehicle, error) {
	t, err := s.tenantRepo.GetByCode(ctx, tenantCode)
	if err != nil {
		return nil, nil, mapRepoErr(err, "tenant")
	}
	vehicles, err := s.vehicleRepo.ListAvailableByTenant(ctx, t.ID)
	if err != nil {
		return nil, nil, mapRepoErr(err, "vehicles")
	}
	return t, vehicles, nil
}
