package service

import (
	"context"
	"time"

	"github.com/sangkips/barbershop-api/internal/domain/commission"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/pkg/money"
)

const topServicesLimit = 5

// DashboardService provides the finance dashboard of a barbershop
type DashboardService struct {
	analyticsRepo     repository.AnalyticsRepository
	commissionService *CommissionService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, commissionService *CommissionService) *DashboardService {
	return &DashboardService{
		analyticsRepo:     analyticsRepo,
		commissionService: commissionService,
	}
}

// PayoutSummary sums ledger entries of one status
type PayoutSummary struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// DailyRevenuePoint represents completed revenue of one day
type DailyRevenuePoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// TopServicePoint represents a service's revenue in the period
type TopServicePoint struct {
	Service  string  `json:"service"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// DashboardStats represents the dashboard of a period.
// Commissions come from the commission report and Payouts from the ledger; they are shown side by side.
// Revenue figures (CompletedRevenue, DailyRevenue, TopServices) leave out bookings of
// deleted professionals, as the report does. Booking counts include them.
type DashboardStats struct {
	DateStart        string                       `json:"date_start"`
	DateEnd          string                       `json:"date_end"`
	BookingsByStatus map[enum.BookingStatus]int64 `json:"bookings_by_status"`
	TotalBookings    int64                        `json:"total_bookings"`
	CompletedRevenue float64                      `json:"completed_revenue"`
	Commissions      commission.Totals            `json:"commissions"`
	TopProfessionals []commission.Aggregate       `json:"top_professionals"`
	PendingPayouts   PayoutSummary                `json:"pending_payouts"`
	PaidPayouts      PayoutSummary                `json:"paid_payouts"`
	DailyRevenue     []DailyRevenuePoint          `json:"daily_revenue"`
	TopServices      []TopServicePoint            `json:"top_services"`
}

// GetDashboardStats returns the dashboard of [from, to]
func (s *DashboardService) GetDashboardStats(ctx context.Context, from, to time.Time) (*DashboardStats, error) {
	report, err := s.commissionService.GetReport(ctx, commission.FilterConfig{DateStart: from, DateEnd: to})
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		DateStart:        from.Format("2006-01-02"),
		DateEnd:          to.Format("2006-01-02"),
		BookingsByStatus: make(map[enum.BookingStatus]int64, len(enum.AllBookingStatuses())),
		CompletedRevenue: report.Totals.GrossAmount,
		Commissions:      report.Totals,
		TopProfessionals: report.Items,
		DailyRevenue:     make([]DailyRevenuePoint, 0),
		TopServices:      make([]TopServicePoint, 0, topServicesLimit),
	}
	if len(stats.TopProfessionals) > topServicesLimit {
		stats.TopProfessionals = stats.TopProfessionals[:topServicesLimit]
	}

	for _, status := range enum.AllBookingStatuses() {
		stats.BookingsByStatus[status] = 0
	}
	counts, err := s.analyticsRepo.GetBookingsByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.BookingsByStatus[c.Status] = c.Count
		stats.TotalBookings += c.Count
	}

	payouts, err := s.analyticsRepo.GetPayoutTotals(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payouts {
		summary := PayoutSummary{Count: p.Count, Amount: money.CentsToFloat(p.CommissionAmount)}
		switch p.Status {
		case enum.PaymentStatusPaid:
			stats.PaidPayouts = summary
		case enum.PaymentStatusPending:
			stats.PendingPayouts = summary
		}
	}

	daily, err := s.analyticsRepo.GetDailyRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, d := range daily {
		stats.DailyRevenue = append(stats.DailyRevenue, DailyRevenuePoint{
			Date:     d.Date.Format("2006-01-02"),
			Revenue:  d.Revenue,
			Bookings: d.Bookings,
		})
	}

	services, err := s.analyticsRepo.GetTopServices(ctx, from, to, topServicesLimit)
	if err != nil {
		return nil, err
	}
	for _, ts := range services {
		stats.TopServices = append(stats.TopServices, TopServicePoint{
			Service:  ts.ServiceName,
			Bookings: ts.BookingsCount,
			Revenue:  ts.Revenue,
		})
	}

	return stats, nil
}
