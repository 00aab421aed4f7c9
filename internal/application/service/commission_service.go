package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/commission"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/internal/infrastructure/metrics"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/export"
)

// CommissionService handles commission rates and the commission report
type CommissionService struct {
	rateRepo         repository.CommissionRateRepository
	professionalRepo repository.ProfessionalRepository
	bookingRepo      repository.BookingRepository
	now              func() time.Time
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	rateRepo repository.CommissionRateRepository,
	professionalRepo repository.ProfessionalRepository,
	bookingRepo repository.BookingRepository,
) *CommissionService {
	return &CommissionService{
		rateRepo:         rateRepo,
		professionalRepo: professionalRepo,
		bookingRepo:      bookingRepo,
		now:              time.Now,
	}
}

// ProfessionalRate is the effective rate of a professional. IsDefault is set when no rate is stored.
type ProfessionalRate struct {
	Professional   entity.ProfessionalSummary `json:"professional"`
	CommissionRate float64                    `json:"commission_rate"`
	IsDefault      bool                       `json:"is_default"`
	UpdatedAt      *time.Time                 `json:"updated_at,omitempty"`
}

// ListRates returns the effective rate of every professional of the barbershop
func (s *CommissionService) ListRates(ctx context.Context) ([]ProfessionalRate, error) {
	professionals, err := s.professionalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListByBarbershop(ctx)
	if err != nil {
		return nil, err
	}

	stored := make(map[uuid.UUID]entity.CommissionRate, len(rates))
	for _, r := range rates {
		if _, seen := stored[r.ProfessionalID]; !seen {
			stored[r.ProfessionalID] = r
		}
	}

	result := make([]ProfessionalRate, 0, len(professionals))
	for i := range professionals {
		p := &professionals[i]
		item := ProfessionalRate{
			Professional:   p.Summary(),
			CommissionRate: commission.ResolveRate(p.ID, rates),
			IsDefault:      true,
		}
		if r, ok := stored[p.ID]; ok {
			updatedAt := r.UpdatedAt
			item.IsDefault = false
			item.UpdatedAt = &updatedAt
		}
		result = append(result, item)
	}

	return result, nil
}

// SetRateInput represents a rate change for a professional
type SetRateInput struct {
	ProfessionalID uuid.UUID
	Rate           float64
	ChangedBy      *uuid.UUID
}

// SetRate stores the rate of a professional and records the change in the rate history.
// An invalid rate is rejected before anything is written.
func (s *CommissionService) SetRate(ctx context.Context, input *SetRateInput) (*entity.CommissionRate, error) {
	if err := commission.ValidateRate(input.Rate); err != nil {
		return nil, apperror.NewFieldError("commission_rate", err.Error())
	}
	newRate := commission.RoundRate(input.Rate)

	barbershopID, ok := infraRepo.GetBarbershopID(ctx)
	if !ok {
		return nil, apperror.ErrBarbershopRequired
	}

	professional, err := s.professionalRepo.GetByID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, apperror.NewNotFoundError("Professional")
	}

	current, err := s.rateRepo.GetByProfessional(ctx, professional.ID)
	if err != nil {
		return nil, err
	}

	var oldRate *float64
	rate := &entity.CommissionRate{
		BarbershopID:   barbershopID,
		ProfessionalID: professional.ID,
	}
	if current != nil {
		if current.CommissionRate == newRate {
			return current, nil
		}
		previous := current.CommissionRate
		oldRate = &previous
		rate = current
	}
	rate.CommissionRate = newRate

	if err := s.rateRepo.Upsert(ctx, rate); err != nil {
		return nil, err
	}

	history := &entity.CommissionRateHistory{
		BarbershopID:   barbershopID,
		ProfessionalID: professional.ID,
		OldRate:        oldRate,
		NewRate:        newRate,
		ChangedBy:      input.ChangedBy,
		ChangedAt:      s.now(),
	}
	if err := s.rateRepo.CreateHistory(ctx, history); err != nil {
		// rate is already saved at this point
		log.Printf("Failed to record commission rate history for %s: %v", professional.ID, err)
	}

	return rate, nil
}

// ListRateHistory returns the rate changes of a professional, newest first
func (s *CommissionService) ListRateHistory(ctx context.Context, professionalID uuid.UUID) ([]entity.CommissionRateHistory, error) {
	professional, err := s.professionalRepo.GetByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, apperror.NewNotFoundError("Professional")
	}

	return s.rateRepo.ListHistory(ctx, professionalID)
}

// ReportFilter echoes the filter a report was built with
type ReportFilter struct {
	DateStart      string `json:"date_start"`
	DateEnd        string `json:"date_end"`
	ProfessionalID string `json:"professional_id"`
}

// CommissionReport is the response of the commission report
type CommissionReport struct {
	Filter ReportFilter           `json:"filter"`
	Items  []commission.Aggregate `json:"items"`
	Totals commission.Totals      `json:"totals"`
}

// GetReport aggregates the completed bookings of the filter window per professional
func (s *CommissionService) GetReport(ctx context.Context, filter commission.FilterConfig) (*CommissionReport, error) {
	report, err := s.buildReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	metrics.CommissionReports.WithLabelValues("json").Inc()
	return report, nil
}

// ExportReport renders the commission report as an xlsx workbook
func (s *CommissionService) ExportReport(ctx context.Context, barbershopName string, filter commission.FilterConfig) ([]byte, error) {
	report, err := s.buildReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	sheet := export.CommissionSheet{
		Barbershop: barbershopName,
		DateStart:  filter.DateStart,
		DateEnd:    filter.DateEnd,
		Rows:       make([]export.CommissionRow, 0, len(report.Items)),
		Totals: export.CommissionRow{
			BookingsCount:    report.Totals.BookingsCount,
			GrossAmount:      report.Totals.GrossAmount,
			CommissionAmount: report.Totals.CommissionAmount,
			NetAmount:        report.Totals.NetAmount,
		},
	}
	for _, item := range report.Items {
		sheet.Rows = append(sheet.Rows, export.CommissionRow{
			Professional:     item.Professional.Name,
			BookingsCount:    item.BookingsCount,
			GrossAmount:      item.GrossAmount,
			CommissionRate:   item.CommissionRate,
			CommissionAmount: item.CommissionAmount,
			NetAmount:        item.NetAmount,
		})
	}

	data, err := export.CommissionReportXLSX(sheet)
	if err != nil {
		return nil, err
	}
	metrics.CommissionReports.WithLabelValues("xlsx").Inc()
	return data, nil
}

func (s *CommissionService) buildReport(ctx context.Context, filter commission.FilterConfig) (*CommissionReport, error) {
	if filter.DateEnd.Before(filter.DateStart) {
		return nil, apperror.NewFieldError("date_end", "must not be before date_start")
	}

	bookings, err := s.bookingRepo.ListCompletedInRange(ctx, filter.DateStart, filter.DateEnd, filter.ProfessionalID)
	if err != nil {
		return nil, err
	}
	professionals, err := s.professionalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListByBarbershop(ctx)
	if err != nil {
		return nil, err
	}

	report := commission.BuildReport(bookings, professionals, rates, filter)

	echo := ReportFilter{
		DateStart:      filter.DateStart.Format("2006-01-02"),
		DateEnd:        filter.DateEnd.Format("2006-01-02"),
		ProfessionalID: "all",
	}
	if filter.ProfessionalID != nil {
		echo.ProfessionalID = filter.ProfessionalID.String()
	}

	return &CommissionReport{
		Filter: echo,
		Items:  report.Items,
		Totals: report.Totals,
	}, nil
}
