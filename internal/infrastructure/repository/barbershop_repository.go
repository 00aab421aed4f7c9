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

type barbershopRepository struct {
	db *gorm.DB
}

// NewBarbershopRepository creates a new barbershop repository
func NewBarbershopRepository(db *gorm.DB) domainRepo.BarbershopRepository {
	return &barbershopRepository{db: db}
}

func (r *barbershopRepository) Create(ctx context.Context, barbershop *entity.Barbershop) error {
	return r.db.WithContext(ctx).Create(barbershop).Error
}

func (r *barbershopRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Barbershop, error) {
	var barbershop entity.Barbershop
	err := r.db.WithContext(ctx).First(&barbershop, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &barbershop, err
}

func (r *barbershopRepository) GetBySlug(ctx context.Context, slug string) (*entity.Barbershop, error) {
	var barbershop entity.Barbershop
	err := r.db.WithContext(ctx).First(&barbershop, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &barbershop, err
}

func (r *barbershopRepository) Update(ctx context.Context, barbershop *entity.Barbershop) error {
	return r.db.WithContext(ctx).Save(barbershop).Error
}

func (r *barbershopRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Barbershop{}).
		Unscoped().
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *barbershopRepository) ListAll(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Barbershop, int64, error) {
	var barbershops []entity.Barbershop
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Barbershop{})
	if search != "" {
		query = query.Where("name ILIKE ? OR slug ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&barbershops).Error

	return barbershops, total, err
}

func (r *barbershopRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Barbershop{}).Count(&count).Error
	return count, err
}
