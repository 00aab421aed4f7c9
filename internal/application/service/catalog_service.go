package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/money"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// CatalogService manages the services a barbershop offers
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CreateServiceInput represents the create service input. Price is in currency units.
type CreateServiceInput struct {
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
}

// CreateService adds a service to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	barbershopID, ok := infraRepo.GetBarbershopID(ctx)
	if !ok {
		return nil, apperror.ErrBarbershopRequired
	}
	if input.Price < 0 {
		return nil, apperror.NewFieldError("price", "must be greater than or equal to 0")
	}

	service := &entity.Service{
		BarbershopID:    barbershopID,
		Name:            input.Name,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Price:           money.FromFloat(input.Price),
		IsActive:        true,
	}
	if service.DurationMinutes <= 0 {
		service.DurationMinutes = 30
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// GetService retrieves a service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return service, nil
}

// ListServices lists catalog services
func (s *CatalogService) ListServices(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, params, search, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// UpdateServiceInput represents the update service input
type UpdateServiceInput struct {
	ID              uuid.UUID
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *float64
	IsActive        *bool
}

// UpdateService updates a catalog service. Existing bookings keep their price snapshot.
func (s *CatalogService) UpdateService(ctx context.Context, input *UpdateServiceInput) (*entity.Service, error) {
	service, err := s.GetService(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = input.Description
	}
	if input.DurationMinutes != nil {
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewFieldError("price", "must be greater than or equal to 0")
		}
		service.Price = money.FromFloat(*input.Price)
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// DeleteService soft-deletes a catalog service
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}
