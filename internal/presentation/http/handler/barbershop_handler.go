package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/barbershop-api/internal/application/service"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// BarbershopHandler handles barbershop (tenant) HTTP requests
type BarbershopHandler struct {
	barbershopService *service.BarbershopService
}

// NewBarbershopHandler creates a new barbershop handler
func NewBarbershopHandler(barbershopService *service.BarbershopService) *BarbershopHandler {
	return &BarbershopHandler{barbershopService: barbershopService}
}

// PublicBarbershop is what the public booking page knows about a barbershop
type PublicBarbershop struct {
	Name            string                    `json:"name"`
	Slug            string                    `json:"slug"`
	Phone           *string                   `json:"phone,omitempty"`
	Address         *string                   `json:"address,omitempty"`
	LogoURL         *string                   `json:"logo_url,omitempty"`
	Settings        entity.BarbershopSettings `json:"settings"`
	AcceptsBookings bool                      `json:"accepts_bookings"`
}

func newPublicBarbershop(b *entity.Barbershop) PublicBarbershop {
	return PublicBarbershop{
		Name:            b.Name,
		Slug:            b.Slug,
		Phone:           b.Phone,
		Address:         b.Address,
		LogoURL:         b.LogoURL,
		Settings:        b.Settings,
		AcceptsBookings: b.AcceptsBookings(),
	}
}

// Create handles creating a barbershop (super admin)
func (h *BarbershopHandler) Create(c *gin.Context) {
	var req request.CreateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	barbershop, err := h.barbershopService.CreateBarbershop(c.Request.Context(), &service.CreateBarbershopInput{
		Name:       req.Name,
		Slug:       req.Slug,
		OwnerEmail: req.OwnerEmail,
		Plan:       req.Plan,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Barbershop created successfully", barbershop)
}

// List handles listing every barbershop (super admin)
func (h *BarbershopHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()

	result, err := h.barbershopService.ListBarbershops(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Barbershops retrieved successfully", result)
}

// Get handles getting a barbershop by ID (super admin)
func (h *BarbershopHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	barbershop, err := h.barbershopService.GetBarbershop(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Barbershop retrieved successfully", barbershop)
}

// UpdateSubscription handles changing a barbershop's subscription (super admin)
func (h *BarbershopHandler) UpdateSubscription(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	barbershop, err := h.barbershopService.UpdateSubscription(c.Request.Context(), &service.UpdateSubscriptionInput{
		ID:        id,
		Status:    enum.SubscriptionStatus(req.Status),
		Plan:      req.Plan,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Subscription updated successfully", barbershop)
}

// GetCurrent handles getting the caller's barbershop
func (h *BarbershopHandler) GetCurrent(c *gin.Context) {
	barbershopID, ok := GetBarbershopID(c)
	if !ok {
		response.Error(c, apperror.ErrBarbershopRequired)
		return
	}

	barbershop, err := h.barbershopService.GetBarbershop(c.Request.Context(), barbershopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Barbershop retrieved successfully", barbershop)
}

// UpdateCurrent handles updating the caller's barbershop profile and settings
func (h *BarbershopHandler) UpdateCurrent(c *gin.Context) {
	barbershopID, ok := GetBarbershopID(c)
	if !ok {
		response.Error(c, apperror.ErrBarbershopRequired)
		return
	}

	var req request.UpdateBarbershopProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	input := &service.UpdateProfileInput{
		ID:      barbershopID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		LogoURL: req.LogoURL,
	}
	if s := req.Settings; s != nil {
		input.Settings = &entity.BarbershopSettings{
			Currency:              s.Currency,
			Timezone:              s.Timezone,
			Locale:                s.Locale,
			DateFormat:            s.DateFormat,
			DefaultCommissionRate: s.DefaultCommissionRate,
			SlotIntervalMinutes:   s.SlotIntervalMinutes,
			AllowOnlineBooking:    s.AllowOnlineBooking,
		}
	}

	barbershop, err := h.barbershopService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Barbershop updated successfully", barbershop)
}

// GetPublic handles the public lookup of a barbershop by slug.
// The barbershop is resolved by the public barbershop middleware.
func (h *BarbershopHandler) GetPublic(c *gin.Context) {
	barbershop, ok := publicBarbershop(c)
	if !ok {
		return
	}

	response.OK(c, "Barbershop retrieved successfully", newPublicBarbershop(barbershop))
}

// publicBarbershop reads the barbershop resolved from the slug of a public route
func publicBarbershop(c *gin.Context) (*entity.Barbershop, bool) {
	val, exists := c.Get("barbershop")
	barbershop, ok := val.(*entity.Barbershop)
	if !exists || !ok {
		response.Error(c, apperror.NewNotFoundError("Barbershop"))
		return nil, false
	}
	return barbershop, true
}
