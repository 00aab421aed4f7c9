package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
)

// StatusCountResult is the number of bookings in one status
type StatusCountResult struct {
	Status enum.BookingStatus
	Count  int64
}

// PayoutSumResult sums ledger entries of one payment status, amounts in cents
type PayoutSumResult struct {
	Status           enum.PaymentStatus
	Count            int64
	CommissionAmount int64
}

// TopServiceResult represents a service's booking performance
type TopServiceResult struct {
	ServiceID     uuid.UUID
	ServiceName   string
	BookingsCount int
	Revenue       float64
}

// DailyRevenueResult represents completed revenue for a single day
type DailyRevenueResult struct {
	Date     time.Time
	Revenue  float64
	Bookings int
}

// AnalyticsRepository defines interface for dashboard aggregation queries.
// All queries are scoped to the barbershop carried by ctx.
type AnalyticsRepository interface {
	// GetBookingsByStatus counts bookings dated in [from, to] grouped by status
	GetBookingsByStatus(ctx context.Context, from, to time.Time) ([]StatusCountResult, error)

	// GetPayoutTotals sums ledger entries grouped by status, regardless of period
	GetPayoutTotals(ctx context.Context) ([]PayoutSumResult, error)

	// GetTopServices returns services ranked by completed revenue in [from, to]
	GetTopServices(ctx context.Context, from, to time.Time, limit int) ([]TopServiceResult, error)

	// GetDailyRevenue returns completed revenue per day in [from, to]
	GetDailyRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenueResult, error)
}
