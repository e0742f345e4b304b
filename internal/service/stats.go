package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type statsService struct {
	statsRepo    repository.StatsRepository
	tenantRepo   repository.TenantRepository
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
}

func NewStatsService(
	statsRepo repository.StatsRepository,
	tenantRepo repository.TenantRepository,
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
) StatsService {
	return &statsService{
		statsRepo:    statsRepo,
		tenantRepo:   tenantRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

func (s *statsService) RecomputeAll(ctx context.Context, now time.Time) error {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return mapRepoErr(err, "tenants")
	}
	for _, t := range tenants {
		if err := s.RecomputeTenant(ctx, t.ID, now); err != nil {
			// One broken tenant must not starve the rest of the fleet.
			logger.Error("stats recompute failed", "tenant_id", t.ID, "error", err)
		}
	}
	return nil
}

func (s *statsService) RecomputeTenant(ctx context.Context, tenantID int64, now time.Time) error {
	now = now.UTC()

	for _, year := range []int{now.Year() - 1, now.Year()} {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0)
		period := fmt.Sprintf("%04d", year)
		if err := s.computeWindow(ctx, tenantID, period, from, to, now, true); err != nil {
			return err
		}
	}

	for month := time.January; month <= now.Month(); month++ {
		from := time.Date(now.Year(), month, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)
		period := from.Format("2006-01")
		if err := s.computeWindow(ctx, tenantID, period, from, to, now, false); err != nil {
			return err
		}
	}

	return nil
}

// computeWindow derives every stat for one period window and upserts the
// rows. Rows are keyed (tenant, period, name), so reruns over unchanged data
// leave the table identical.
func (s *statsService) computeWindow(ctx context.Context, tenantID int64, period string, from, to, now time.Time, yearly bool) error {
	revenue, err := s.ledgerRepo.SumTransactionsBetween(ctx, tenantID, from, to)
	if err != nil {
		return mapRepoErr(err, "transactions")
	}
	completed, err := s.bookingRepo.ListCompletedBetween(ctx, tenantID, from, to)
	if err != nil {
		return mapRepoErr(err, "bookings")
	}
	customers, err := s.customerRepo.CountCreatedBetween(ctx, tenantID, from, to)
	if err != nil {
		return mapRepoErr(err, "customers")
	}

	revenueName, rentalsName, customersName := domain.StatMonthlyRevenue, domain.StatMonthlyRentals, domain.StatMonthlyCustomers
	if yearly {
		revenueName, rentalsName, customersName = domain.StatYearlyRevenue, domain.StatYearlyRentals, domain.StatYearlyCustomers
	}

	stats := []domain.TenantStat{
		{Name: revenueName, Value: revenue},
		{Name: rentalsName, Value: decimal.NewFromInt(int64(len(completed)))},
		{Name: customersName, Value: decimal.NewFromInt(customers)},
	}

	stats = append(stats, domain.TenantStat{
		Name:  domain.StatAverageRentalDuration,
		Value: averageDuration(completed),
	})

	counts, err := s.bookingRepo.CountByStatus(ctx, tenantID, from, to)
	if err != nil {
		return mapRepoErr(err, "bookings")
	}
	for status, count := range counts {
		stats = append(stats, domain.TenantStat{
			Name:  domain.StatStatusCountPrefix + string(status),
			Value: decimal.NewFromInt(count),
		})
	}

	for i := range stats {
		stats[i].TenantID = tenantID
		stats[i].Period = period
		stats[i].ComputedOn = now
		if err := s.statsRepo.Upsert(ctx, &stats[i]); err != nil {
			return mapRepoErr(err, "stat")
		}
	}
	return nil
}

// averageDuration is the mean rental length in days across completed
// bookings, rounded to two decimals. Zero when there are none.
func averageDuration(completed []domain.Booking) decimal.Decimal {
	if len(completed) == 0 {
		return decimal.Zero
	}
	var total int64
	for _, b := range completed {
		total += b.DurationDays()
	}
	return decimal.NewFromInt(total).
		Div(decimal.NewFromInt(int64(len(completed)))).
		Round(2)
}

func (s *statsService) Get(ctx context.Context, tenantID int64, period string) ([]domain.TenantStat, error) {
	stats, err := s.statsRepo.ListByTenantPeriod(ctx, tenantID, period)
	if err != nil {
		return nil, mapRepoErr(err, "stats")
	}
	return stats, nil
}
