package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/commission"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/internal/infrastructure/metrics"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/money"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// PayoutService manages the commission payout ledger.
// Ledger entries are entered by hand and never reconciled with the commission report.
type PayoutService struct {
	paymentRepo      repository.CommissionPaymentRepository
	professionalRepo repository.ProfessionalRepository
	now              func() time.Time
}

// NewPayoutService creates a new payout service
func NewPayoutService(paymentRepo repository.CommissionPaymentRepository, professionalRepo repository.ProfessionalRepository) *PayoutService {
	return &PayoutService{
		paymentRepo:      paymentRepo,
		professionalRepo: professionalRepo,
		now:              time.Now,
	}
}

// CreatePayoutInput represents a new ledger entry. Amounts are in currency units.
// CommissionRate defaults to commission.DefaultRate when nil.
type CreatePayoutInput struct {
	ProfessionalID uuid.UUID
	PeriodStart    time.Time
	PeriodEnd      time.Time
	GrossAmount    float64
	CommissionRate *float64
	Notes          *string
}

// CreatePayout records a pending payout with its commission amount computed once
func (s *PayoutService) CreatePayout(ctx context.Context, input *CreatePayoutInput) (*entity.CommissionPayment, error) {
	rate := commission.DefaultRate
	if input.CommissionRate != nil {
		rate = *input.CommissionRate
	}

	var fieldErrors []apperror.FieldError
	if err := commission.ValidateRate(rate); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "commission_rate", Message: err.Error()})
	} else {
		rate = commission.RoundRate(rate)
	}
	if input.GrossAmount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gross_amount", Message: "must be greater than or equal to 0"})
	}
	if input.PeriodEnd.Before(input.PeriodStart) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "period_end", Message: "must not be before period_start"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

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

	gross := money.FromFloat(input.GrossAmount)
	payment := &entity.CommissionPayment{
		BarbershopID:     barbershopID,
		ProfessionalID:   professional.ID,
		PeriodStart:      input.PeriodStart,
		PeriodEnd:        input.PeriodEnd,
		GrossAmount:      gross,
		CommissionRate:   rate,
		CommissionAmount: commission.PayoutCommission(gross, rate),
		Status:           enum.PaymentStatusPending,
		Notes:            input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	payment.Professional = professional
	metrics.PayoutsCreated.Inc()

	log.Printf("Payout %s recorded for professional %s (%d cents)", payment.ID, professional.ID, payment.CommissionAmount)
	return payment, nil
}

// GetPayout retrieves a ledger entry by ID
func (s *PayoutService) GetPayout(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payout")
	}
	return payment, nil
}

// ListPayouts lists ledger entries, optionally by professional and status
func (s *PayoutService) ListPayouts(ctx context.Context, params *pagination.PaginationParams, filter repository.PaymentFilter) (*pagination.PaginatedResult[entity.CommissionPayment], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of: pending, paid")
	}

	payments, total, err := s.paymentRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// UpdatePayoutStatus toggles a ledger entry between pending and paid.
// Paid stamps paid_at with the current time; pending clears it.
func (s *PayoutService) UpdatePayoutStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) (*entity.CommissionPayment, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of: pending, paid")
	}

	payment, err := s.GetPayout(ctx, id)
	if err != nil {
		return nil, err
	}

	payment.Status = status
	if status == enum.PaymentStatusPaid {
		paidAt := s.now()
		payment.PaidAt = &paidAt
	} else {
		payment.PaidAt = nil
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("Payout %s marked %s", payment.ID, payment.Status)
	return payment, nil
}
