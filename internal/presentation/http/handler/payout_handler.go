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

// PayoutHandler handles the commission payout ledger
type PayoutHandler struct {
	payoutService *service.PayoutService
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payoutService *service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// Create handles recording a payout
func (h *PayoutHandler) Create(c *gin.Context) {
	var req request.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	periodStart, err := parseDate("period_start", req.PeriodStart)
	if err != nil {
		response.Error(c, err)
		return
	}
	periodEnd, err := parseDate("period_end", req.PeriodEnd)
	if err != nil {
		response.Error(c, err)
		return
	}

	payout, err := h.payoutService.CreatePayout(c.Request.Context(), &service.CreatePayoutInput{
		ProfessionalID: uuid.MustParse(req.ProfessionalID),
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		GrossAmount:    req.GrossAmount,
		CommissionRate: req.CommissionRate,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payout recorded successfully", payout)
}

// List handles listing payouts by professional and status
func (h *PayoutHandler) List(c *gin.Context) {
	var req request.PayoutFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	professionalID, err := parseProfessionalFilter("professional_id", req.ProfessionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	params.Validate()

	result, err := h.payoutService.ListPayouts(c.Request.Context(), params, repository.PaymentFilter{
		ProfessionalID: professionalID,
		Status:         enum.PaymentStatus(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payouts retrieved successfully", result)
}

// Get handles getting a payout
func (h *PayoutHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	payout, err := h.payoutService.GetPayout(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payout retrieved successfully", payout)
}

// UpdateStatus handles marking a payout as paid or back to pending
func (h *PayoutHandler) UpdateStatus(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdatePayoutStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	payout, err := h.payoutService.UpdatePayoutStatus(c.Request.Context(), id, enum.PaymentStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payout status updated successfully", payout)
}
