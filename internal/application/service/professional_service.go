package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// ProfessionalService handles professional-related operations
type ProfessionalService struct {
	professionalRepo repository.ProfessionalRepository
}

// NewProfessionalService creates a new professional service
func NewProfessionalService(professionalRepo repository.ProfessionalRepository) *ProfessionalService {
	return &ProfessionalService{professionalRepo: professionalRepo}
}

// CreateProfessionalInput represents the create professional input
type CreateProfessionalInput struct {
	Name     string
	Email    *string
	Phone    *string
	PhotoURL *string
	Bio      *string
	IsActive *bool
}

// CreateProfessional creates a new professional in the barbershop of ctx
func (s *ProfessionalService) CreateProfessional(ctx context.Context, input *CreateProfessionalInput) (*entity.Professional, error) {
	barbershopID, ok := infraRepo.GetBarbershopID(ctx)
	if !ok {
		return nil, apperror.ErrBarbershopRequired
	}

	professional := &entity.Professional{
		BarbershopID: barbershopID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PhotoURL:     input.PhotoURL,
		Bio:          input.Bio,
		IsActive:     true,
	}
	if input.IsActive != nil {
		professional.IsActive = *input.IsActive
	}

	if err := s.professionalRepo.Create(ctx, professional); err != nil {
		return nil, err
	}

	return professional, nil
}

// GetProfessional retrieves a professional by ID
func (s *ProfessionalService) GetProfessional(ctx context.Context, id uuid.UUID) (*entity.Professional, error) {
	professional, err := s.professionalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, apperror.NewNotFoundError("Professional")
	}
	return professional, nil
}

// ListProfessionals lists the professionals of the barbershop
func (s *ProfessionalService) ListProfessionals(ctx context.Context, params *pagination.PaginationParams, filter repository.ProfessionalFilter) (*pagination.PaginatedResult[entity.Professional], error) {
	professionals, total, err := s.professionalRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(professionals, pag), nil
}

// UpdateProfessionalInput represents the update professional input
type UpdateProfessionalInput struct {
	ID       uuid.UUID
	Name     *string
	Email    *string
	Phone    *string
	PhotoURL *string
	Bio      *string
	IsActive *bool
}

// UpdateProfessional updates a professional
func (s *ProfessionalService) UpdateProfessional(ctx context.Context, input *UpdateProfessionalInput) (*entity.Professional, error) {
	professional, err := s.GetProfessional(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		professional.Name = *input.Name
	}
	if input.Email != nil {
		professional.Email = input.Email
	}
	if input.Phone != nil {
		professional.Phone = input.Phone
	}
	if input.PhotoURL != nil {
		professional.PhotoURL = input.PhotoURL
	}
	if input.Bio != nil {
		professional.Bio = input.Bio
	}
	if input.IsActive != nil {
		professional.IsActive = *input.IsActive
	}

	if err := s.professionalRepo.Update(ctx, professional); err != nil {
		return nil, err
	}

	return professional, nil
}

// DeleteProfessional soft-deletes a professional. Past bookings keep pointing at it.
func (s *ProfessionalService) DeleteProfessional(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProfessional(ctx, id); err != nil {
		return err
	}
	return s.professionalRepo.Delete(ctx, id)
}
