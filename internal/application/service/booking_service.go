package service

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/money"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// BookingService handles public booking and booking administration
type BookingService struct {
	bookingRepo      repository.BookingRepository
	professionalRepo repository.ProfessionalRepository
	serviceRepo      repository.ServiceRepository
	now              func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	professionalRepo repository.ProfessionalRepository,
	serviceRepo repository.ServiceRepository,
) *BookingService {
	return &BookingService{
		bookingRepo:      bookingRepo,
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		now:              time.Now,
	}
}

// CreateBookingInput represents a booking made from the public page
type CreateBookingInput struct {
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	ClientName     string
	ClientPhone    string
	ClientEmail    *string
	BookingDate    time.Time
	BookingTime    string
	Notes          *string
}

// CreatePublicBooking books a service with a professional of barbershop.
// ctx must carry the barbershop so lookups stay inside it.
func (s *BookingService) CreatePublicBooking(ctx context.Context, barbershop *entity.Barbershop, input *CreateBookingInput) (*entity.Booking, error) {
	if !barbershop.AcceptsBookings() {
		return nil, apperror.NewAppError(http.StatusForbidden, "This barbershop is not accepting online bookings")
	}
	if _, err := time.Parse("15:04", input.BookingTime); err != nil {
		return nil, apperror.NewFieldError("booking_time", "must be a time formatted as HH:MM")
	}

	professional, err := s.professionalRepo.GetByID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil || !professional.IsActive {
		return nil, apperror.NewNotFoundError("Professional")
	}

	service, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil || !service.IsActive {
		return nil, apperror.NewNotFoundError("Service")
	}

	price := service.Price
	booking := &entity.Booking{
		BarbershopID:   barbershop.ID,
		ProfessionalID: professional.ID,
		ServiceID:      &service.ID,
		ClientName:     input.ClientName,
		ClientPhone:    input.ClientPhone,
		ClientEmail:    input.ClientEmail,
		BookingDate:    input.BookingDate,
		BookingTime:    input.BookingTime,
		Status:         enum.BookingStatusPending,
		Price:          &price,
		Notes:          input.Notes,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	booking.Professional = professional
	booking.Service = service

	log.Printf("Booking %s created for %s on %s %s", booking.ID, barbershop.Slug, booking.BookingDate.Format("2006-01-02"), booking.BookingTime)
	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	return booking, nil
}

// ListBookings lists bookings with page-based or cursor-based pagination, whichever params asks for
func (s *BookingService) ListBookings(ctx context.Context, params *pagination.UnifiedPaginationParams, filter repository.BookingFilter) (*pagination.UnifiedPaginatedResult[entity.Booking], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "unknown booking status")
	}

	if params.IsCursorBased() {
		cursorParams := params.ToCursorParams()
		if !validCursor(cursorParams) {
			return nil, apperror.NewFieldError("cursor", "invalid cursor")
		}

		bookings, err := s.bookingRepo.ListWithCursor(ctx, cursorParams, filter)
		if err != nil {
			return nil, err
		}

		cursorPag, items := pagination.NewCursorPagination(bookings, cursorParams,
			func(b entity.Booking) string { return b.ID.String() },
			func(b entity.Booking) time.Time { return b.CreatedAt },
		)

		return pagination.NewUnifiedPaginatedResultFromCursor(items, cursorPag), nil
	}

	pageParams := params.ToPaginationParams()
	bookings, total, err := s.bookingRepo.List(ctx, pageParams, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(pageParams.Page, pageParams.PerPage, total)
	return pagination.NewUnifiedPaginatedResultFromPage(bookings, pag), nil
}

// UpdateBookingStatusInput changes a booking's status.
// TotalPrice, in currency units, overrides the charged amount and is only accepted on completion.
type UpdateBookingStatusInput struct {
	ID         uuid.UUID
	Status     enum.BookingStatus
	TotalPrice *float64
}

// UpdateBookingStatus moves a booking to a new status
func (s *BookingService) UpdateBookingStatus(ctx context.Context, input *UpdateBookingStatusInput) (*entity.Booking, error) {
	if !input.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of: pending, confirmed, completed, cancelled, no_show")
	}
	if input.TotalPrice != nil {
		if input.Status != enum.BookingStatusCompleted {
			return nil, apperror.NewFieldError("total_price", "can only be set when completing a booking")
		}
		if *input.TotalPrice < 0 {
			return nil, apperror.NewFieldError("total_price", "must be greater than or equal to 0")
		}
	}

	booking, err := s.GetBooking(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking.Status = input.Status

	switch input.Status {
	case enum.BookingStatusCompleted:
		booking.CompletedAt = &now
		booking.CancelledAt = nil
		if input.TotalPrice != nil {
			cents := money.FromFloat(*input.TotalPrice)
			booking.TotalPrice = &cents
		}
	case enum.BookingStatusCancelled:
		booking.CancelledAt = &now
		booking.CompletedAt = nil
	default:
		booking.CompletedAt = nil
		booking.CancelledAt = nil
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// validCursor reports whether the cursor, when present, decodes to a booking position
func validCursor(params *pagination.CursorParams) bool {
	cursor, err := params.DecodeCursor()
	if err != nil {
		return false
	}
	if cursor == nil {
		return true
	}
	_, err = uuid.Parse(cursor.ID)
	return err == nil
}
