package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// BookingFilter narrows booking listings. Zero values are ignored.
type BookingFilter struct {
	Status         enum.BookingStatus
	ProfessionalID *uuid.UUID
	DateFrom       *time.Time
	DateTo         *time.Time
	Search         string
}

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// List returns bookings with page-based pagination
	List(ctx context.Context, params *pagination.PaginationParams, filter BookingFilter) ([]entity.Booking, int64, error)

	// ListWithCursor returns bookings using cursor-based pagination
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, filter BookingFilter) ([]entity.Booking, error)

	// ListCompletedInRange returns the completed bookings whose date falls in [from, to].
	// It is the input of the commission report.
	ListCompletedInRange(ctx context.Context, from, to time.Time, professionalID *uuid.UUID) ([]entity.Booking, error)
}
