package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/pkg/pagination"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Omit("Professional", "Service").Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Professional").
		Preload("Service").
		First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Omit("Professional", "Service").Save(booking).Error
}

func (r *bookingRepository) filtered(ctx context.Context, filter domainRepo.BookingFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Booking{}).Scopes(TenantScope(ctx))

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *filter.ProfessionalID)
	}
	if filter.DateFrom != nil {
		query = query.Where("booking_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("booking_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		query = query.Where("client_name ILIKE ? OR client_phone ILIKE ? OR client_email ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	return query
}

func (r *bookingRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.BookingFilter) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	query := r.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Professional").Preload("Service").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("booking_date DESC, booking_time DESC").
		Find(&bookings).Error

	return bookings, total, err
}

// ListWithCursor returns the limit+1 bookings after the cursor in ascending order,
// or for the prev direction the limit+1 bookings before it, newest first
func (r *bookingRepository) ListWithCursor(ctx context.Context, params *pagination.CursorParams, filter domainRepo.BookingFilter) ([]entity.Booking, error) {
	var bookings []entity.Booking

	params.Validate()
	query := r.filtered(ctx, filter)

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	order := "created_at ASC, id ASC"
	if params.Direction == pagination.CursorDirectionPrev {
		order = "created_at DESC, id DESC"
	}
	if cursor != nil {
		if params.Direction == pagination.CursorDirectionPrev {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Preload("Professional").Preload("Service").
		Limit(params.Limit + 1).
		Order(order).
		Find(&bookings).Error

	return bookings, err
}

func (r *bookingRepository) ListCompletedInRange(ctx context.Context, from, to time.Time, professionalID *uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking

	query := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("status = ?", enum.BookingStatusCompleted).
		Where("booking_date >= ? AND booking_date <= ?", from, to)
	if professionalID != nil {
		query = query.Where("professional_id = ?", *professionalID)
	}

	err := query.Order("booking_date ASC, booking_time ASC, created_at ASC").Find(&bookings).Error
	return bookings, err
}
