package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/pkg/pagination"
	"gorm.io/gorm"
)

type professionalRepository struct {
	db *gorm.DB
}

// NewProfessionalRepository creates a new professional repository
func NewProfessionalRepository(db *gorm.DB) domainRepo.ProfessionalRepository {
	return &professionalRepository{db: db}
}

func (r *professionalRepository) Create(ctx context.Context, professional *entity.Professional) error {
	return r.db.WithContext(ctx).Omit("Barbershop").Create(professional).Error
}

func (r *professionalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Professional, error) {
	var professional entity.Professional
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&professional, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &professional, err
}

func (r *professionalRepository) Update(ctx context.Context, professional *entity.Professional) error {
	return r.db.WithContext(ctx).Omit("Barbershop").Save(professional).Error
}

func (r *professionalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Professional{}, "id = ?", id).Error
}

func (r *professionalRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ProfessionalFilter) ([]entity.Professional, int64, error) {
	var professionals []entity.Professional
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Professional{}).Scopes(TenantScope(ctx))

	if filter.Search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&professionals).Error

	return professionals, total, err
}

func (r *professionalRepository) ListAll(ctx context.Context) ([]entity.Professional, error) {
	var professionals []entity.Professional
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&professionals).Error
	return professionals, err
}
