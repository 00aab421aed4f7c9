package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// ProfessionalFilter narrows professional listings
type ProfessionalFilter struct {
	Search string
	Active *bool
}

// ProfessionalRepository defines the interface for professional data operations.
// Every method is scoped to the barbershop carried by ctx.
type ProfessionalRepository interface {
	Create(ctx context.Context, professional *entity.Professional) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Professional, error)
	Update(ctx context.Context, professional *entity.Professional) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter ProfessionalFilter) ([]entity.Professional, int64, error)

	// ListAll returns every professional of the barbershop, including inactive ones
	ListAll(ctx context.Context) ([]entity.Professional, error)
}
