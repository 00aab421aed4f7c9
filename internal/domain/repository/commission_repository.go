package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// CommissionRateRepository defines the interface for commission rates and their history
type CommissionRateRepository interface {
	// ListByBarbershop returns the current rates of the barbershop in ctx
	ListByBarbershop(ctx context.Context) ([]entity.CommissionRate, error)

	// GetByProfessional returns nil, nil when the professional has no rate
	GetByProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.CommissionRate, error)

	// Upsert creates or replaces the rate of rate.ProfessionalID
	Upsert(ctx context.Context, rate *entity.CommissionRate) error

	CreateHistory(ctx context.Context, history *entity.CommissionRateHistory) error
	ListHistory(ctx context.Context, professionalID uuid.UUID) ([]entity.CommissionRateHistory, error)
}

// PaymentFilter narrows ledger listings. Zero values are ignored.
type PaymentFilter struct {
	ProfessionalID *uuid.UUID
	Status         enum.PaymentStatus
}

// CommissionPaymentRepository defines the interface for the payout ledger
type CommissionPaymentRepository interface {
	Create(ctx context.Context, payment *entity.CommissionPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error)
	Update(ctx context.Context, payment *entity.CommissionPayment) error
	List(ctx context.Context, params *pagination.PaginationParams, filter PaymentFilter) ([]entity.CommissionPayment, int64, error)
}
