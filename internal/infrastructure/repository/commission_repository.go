package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type commissionRateRepository struct {
	db *gorm.DB
}

// NewCommissionRateRepository creates a new commission rate repository
func NewCommissionRateRepository(db *gorm.DB) domainRepo.CommissionRateRepository {
	return &commissionRateRepository{db: db}
}

func (r *commissionRateRepository) ListByBarbershop(ctx context.Context) ([]entity.CommissionRate, error) {
	var rates []entity.CommissionRate
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Order("created_at ASC").
		Find(&rates).Error
	return rates, err
}

func (r *commissionRateRepository) GetByProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.CommissionRate, error) {
	var rate entity.CommissionRate
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&rate, "professional_id = ?", professionalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *commissionRateRepository) Upsert(ctx context.Context, rate *entity.CommissionRate) error {
	if rate.ID != uuid.Nil {
		return r.db.WithContext(ctx).Save(rate).Error
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "professional_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"commission_rate", "updated_at", "deleted_at"}),
	}).Create(rate).Error
}

func (r *commissionRateRepository) CreateHistory(ctx context.Context, history *entity.CommissionRateHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *commissionRateRepository) ListHistory(ctx context.Context, professionalID uuid.UUID) ([]entity.CommissionRateHistory, error) {
	var history []entity.CommissionRateHistory
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("professional_id = ?", professionalID).
		Order("changed_at DESC").
		Find(&history).Error
	return history, err
}

type commissionPaymentRepository struct {
	db *gorm.DB
}

// NewCommissionPaymentRepository creates a new payout ledger repository
func NewCommissionPaymentRepository(db *gorm.DB) domainRepo.CommissionPaymentRepository {
	return &commissionPaymentRepository{db: db}
}

func (r *commissionPaymentRepository) Create(ctx context.Context, payment *entity.CommissionPayment) error {
	return r.db.WithContext(ctx).Omit("Professional").Create(payment).Error
}

func (r *commissionPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error) {
	var payment entity.CommissionPayment
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Professional").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *commissionPaymentRepository) Update(ctx context.Context, payment *entity.CommissionPayment) error {
	return r.db.WithContext(ctx).Omit("Professional").Save(payment).Error
}

func (r *commissionPaymentRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.PaymentFilter) ([]entity.CommissionPayment, int64, error) {
	var payments []entity.CommissionPayment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CommissionPayment{}).Scopes(TenantScope(ctx))
	if filter.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *filter.ProfessionalID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Professional").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("period_end DESC, created_at DESC").
		Find(&payments).Error

	return payments, total, err
}
