package repository

import (
	"context"
	"time"

	"github.com/sangkips/barbershop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/barbershop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetBookingsByStatus(ctx context.Context, from, to time.Time) ([]domainRepo.StatusCountResult, error) {
	var results []domainRepo.StatusCountResult

	err := r.db.WithContext(ctx).
		Table("bookings").
		Scopes(TenantScope(ctx)).
		Select("status, COUNT(*) as count").
		Where("deleted_at IS NULL").
		Where("booking_date >= ? AND booking_date <= ?", from, to).
		Group("status").
		Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetPayoutTotals(ctx context.Context) ([]domainRepo.PayoutSumResult, error) {
	var results []domainRepo.PayoutSumResult

	err := r.db.WithContext(ctx).
		Table("commission_payments").
		Scopes(TenantScope(ctx)).
		Select("status, COUNT(*) as count, COALESCE(SUM(commission_amount), 0) as commission_amount").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&results).Error

	return results, err
}

// Revenue queries only count bookings of professionals still on the roster,
// matching the commission report the dashboard totals come from.

func (r *analyticsRepository) GetTopServices(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopServiceResult, error) {
	var results []domainRepo.TopServiceResult

	barbershopID, ok := GetBarbershopID(ctx)
	if !ok {
		return results, nil
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id as service_id,
			s.name as service_name,
			COUNT(b.id) as bookings_count,
			COALESCE(SUM(COALESCE(b.total_price, b.price, 0)), 0) / 100.0 as revenue
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		JOIN professionals p ON p.id = b.professional_id AND p.deleted_at IS NULL
		WHERE b.barbershop_id = ?
		AND b.deleted_at IS NULL
		AND b.status = ?
		AND b.booking_date >= ? AND b.booking_date <= ?
		GROUP BY s.id, s.name
		ORDER BY revenue DESC
		LIMIT ?
	`, barbershopID, enum.BookingStatusCompleted, from, to, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailyRevenue(ctx context.Context, from, to time.Time) ([]domainRepo.DailyRevenueResult, error) {
	var results []domainRepo.DailyRevenueResult

	barbershopID, ok := GetBarbershopID(ctx)
	if !ok {
		return results, nil
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.booking_date as date,
			COALESCE(SUM(COALESCE(b.total_price, b.price, 0)), 0) / 100.0 as revenue,
			COUNT(*) as bookings
		FROM bookings b
		JOIN professionals p ON p.id = b.professional_id AND p.deleted_at IS NULL
		WHERE b.barbershop_id = ?
		AND b.deleted_at IS NULL
		AND b.status = ?
		AND b.booking_date >= ? AND b.booking_date <= ?
		GROUP BY b.booking_date
		ORDER BY b.booking_date ASC
	`, barbershopID, enum.BookingStatusCompleted, from, to).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
