package service

import (
	"context"
	"time"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func validateVehicle(v *domain.Vehicle) error {
	if v.Make == "" || v.Model == "" {
		return apperr.Validation("make and model are required")
	}
	if v.Year < 1900 || v.Year > time.Now().Year()+1 {
		return apperr.Validation("invalid year %d", v.Year)
	}
	if v.LicensePlate == "" {
		return apperr.Validation("license plate is required")
	}
	if v.DayPrice.IsNegative() || v.WeekPrice.IsNegative() || v.MonthPrice.IsNegative() {
		return apperr.Validation("prices cannot be negative")
	}
	if v.DiscountPercent.IsNegative() || v.DiscountPercent.GreaterThan(hundred) {
		return apperr.Validation("discount percent must be between 0 and 100")
	}
	return nil
}

func (s *vehicleService) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return nil, err
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, mapRepoErr(err, "license plate")
	}
	return v, nil
}

func (s *vehicleService) Get(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "vehicle")
	}
	return v, nil
}

func (s *vehicleService) Update(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.GetByID(ctx, v.TenantID, v.ID); err != nil {
		return nil, mapRepoErr(err, "vehicle")
	}
	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		return nil, mapRepoErr(err, "vehicle")
	}
	return v, nil
}

func (s *vehicleService) Delete(ctx context.Context, tenantID, id int64) error {
	return mapRepoErr(s.vehicleRepo.SoftDelete(ctx, tenantID, id), "vehicle")
}

func (s *vehicleService) List(ctx context.Context, tenantID int64) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "vehicles")
	}
	return vehicles, nil
}
