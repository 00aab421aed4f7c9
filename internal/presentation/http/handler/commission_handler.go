package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/barbershop-api/internal/application/service"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/barbershop-api/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CommissionHandler handles commission rates and the commission report
type CommissionHandler struct {
	commissionService *service.CommissionService
	barbershopService *service.BarbershopService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *service.CommissionService, barbershopService *service.BarbershopService) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
		barbershopService: barbershopService,
	}
}

// ListRates handles listing the effective rate of every professional
func (h *CommissionHandler) ListRates(c *gin.Context) {
	rates, err := h.commissionService.ListRates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rates retrieved successfully", rates)
}

// SetRate handles setting the commission rate of a professional
func (h *CommissionHandler) SetRate(c *gin.Context) {
	professionalID, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.SetCommissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	rate, err := h.commissionService.SetRate(c.Request.Context(), &service.SetRateInput{
		ProfessionalID: professionalID,
		Rate:           *req.CommissionRate,
		ChangedBy:      GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rate updated successfully", rate)
}

// ListHistory handles listing the rate changes of a professional
func (h *CommissionHandler) ListHistory(c *gin.Context) {
	professionalID, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	history, err := h.commissionService.ListRateHistory(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rate history retrieved successfully", history)
}

// Report handles the commission report of a period
func (h *CommissionHandler) Report(c *gin.Context) {
	var req request.CommissionReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	filter, err := reportFilter(req.DateStart, req.DateEnd, req.ProfessionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.commissionService.GetReport(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission report generated successfully", report)
}

// Export handles downloading the commission report as a spreadsheet
func (h *CommissionHandler) Export(c *gin.Context) {
	var req request.CommissionReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	filter, err := reportFilter(req.DateStart, req.DateEnd, req.ProfessionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

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

	data, err := h.commissionService.ExportReport(c.Request.Context(), barbershop.Name, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("commissions-%s-%s-%s.xlsx", barbershop.Slug, req.DateStart, req.DateEnd)
	response.Attachment(c, filename, xlsxContentType, data)
}
