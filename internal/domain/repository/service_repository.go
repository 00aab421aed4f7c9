package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// ServiceRepository defines the interface for the service catalog
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns services with page-based pagination. If activeOnly is true, inactive services are skipped.
	List(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Service, int64, error)
}
