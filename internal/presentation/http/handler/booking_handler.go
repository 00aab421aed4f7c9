package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/application/service"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreatePublic handles a booking made on the public page of a barbershop
func (h *BookingHandler) CreatePublic(c *gin.Context) {
	barbershop, ok := publicBarbershop(c)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	bookingDate, err := parseDate("booking_date", req.BookingDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookingService.CreatePublicBooking(c.Request.Context(), barbershop, &service.CreateBookingInput{
		ProfessionalID: uuid.MustParse(req.ProfessionalID),
		ServiceID:      uuid.MustParse(req.ServiceID),
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		BookingDate:    bookingDate,
		BookingTime:    req.BookingTime,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

// List handles listing bookings (supports both page-based and cursor-based pagination)
func (h *BookingHandler) List(c *gin.Context) {
	var params pagination.UnifiedPaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BindingError(c, err)
		return
	}

	var req request.BookingFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	filter := repository.BookingFilter{
		Status: enum.BookingStatus(req.Status),
		Search: req.Search,
	}

	var err error
	if filter.ProfessionalID, err = parseProfessionalFilter("professional_id", req.ProfessionalID); err != nil {
		response.Error(c, err)
		return
	}
	if req.DateFrom != "" {
		from, err := parseDate("date_from", req.DateFrom)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := parseDate("date_to", req.DateTo)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateTo = &to
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), &params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bookings retrieved successfully", result)
}

// Get handles getting a booking
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", booking)
}

// UpdateStatus handles moving a booking to a new status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), &service.UpdateBookingStatusInput{
		ID:         id,
		Status:     enum.BookingStatus(req.Status),
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking updated successfully", booking)
}
