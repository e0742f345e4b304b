package service

import (
	"context"
	"strings"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func validateCustomer(c *domain.Customer) error {
	if c.FirstName == "" || c.LastName == "" {
		return apperr.Validation("first and last name are required")
	}
	if c.Email == "" && c.Phone == "" {
		return apperr.Validation("customer needs an email or a phone number")
	}
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	return nil
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := validateCustomer(c); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, mapRepoErr(err, "customer")
	}
	return c, nil
}

func (s *customerService) Get(ctx context.Context, tenantID, id int64) (*domain.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "customer")
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := validateCustomer(c); err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.GetByID(ctx, c.TenantID, c.ID); err != nil {
		return nil, mapRepoErr(err, "customer")
	}
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, mapRepoErr(err, "customer")
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, tenantID, id int64) error {
	return mapRepoErr(s.customerRepo.SoftDelete(ctx, tenantID, id), "customer")
}

func (s *customerService) List(ctx context.Context, tenantID int64) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "customers")
	}
	return customers, nil
}
