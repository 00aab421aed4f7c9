package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/barbershop-api/internal/application/service"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// ProfessionalHandler handles professional-related HTTP requests
type ProfessionalHandler struct {
	professionalService *service.ProfessionalService
}

// NewProfessionalHandler creates a new professional handler
func NewProfessionalHandler(professionalService *service.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{professionalService: professionalService}
}

// List handles listing professionals
func (h *ProfessionalHandler) List(c *gin.Context) {
	var req request.ProfessionalFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	params.Validate()

	result, err := h.professionalService.ListProfessionals(c.Request.Context(), params, repository.ProfessionalFilter{
		Search: req.Search,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Professionals retrieved successfully", result)
}

// ListPublic handles listing the active professionals on the public booking page
func (h *ProfessionalHandler) ListPublic(c *gin.Context) {
	active := true
	params := &pagination.PaginationParams{Page: 1, PerPage: 100}

	result, err := h.professionalService.ListProfessionals(c.Request.Context(), params, repository.ProfessionalFilter{Active: &active})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]entity.ProfessionalSummary, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, result.Items[i].Summary())
	}
	response.OK(c, "Professionals retrieved successfully", items)
}

// Create handles creating a professional
func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req request.CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	professional, err := h.professionalService.CreateProfessional(c.Request.Context(), &service.CreateProfessionalInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Bio:      req.Bio,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Professional created successfully", professional)
}

// Get handles getting a professional
func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	professional, err := h.professionalService.GetProfessional(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Professional retrieved successfully", professional)
}

// Update handles updating a professional
func (h *ProfessionalHandler) Update(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	professional, err := h.professionalService.UpdateProfessional(c.Request.Context(), &service.UpdateProfessionalInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Bio:      req.Bio,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Professional updated successfully", professional)
}

// Delete handles deleting a professional
func (h *ProfessionalHandler) Delete(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.professionalService.DeleteProfessional(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Professional deleted successfully", nil)
}
