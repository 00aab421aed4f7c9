package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/barbershop-api/internal/application/service"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/barbershop-api/pkg/apperror"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	now              func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// GetStats handles getting the finance dashboard. The window defaults to the current month.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var req request.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	from, to := currentMonth(h.now())
	var err error
	if req.DateStart != "" {
		if from, err = parseDate("date_start", req.DateStart); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.DateEnd != "" {
		if to, err = parseDate("date_end", req.DateEnd); err != nil {
			response.Error(c, err)
			return
		}
	}
	if to.Before(from) {
		response.Error(c, apperror.NewFieldError("date_end", "must not be before date_start"))
		return
	}

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
