package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

// BarbershopRepository defines the interface for barbershop (tenant) data operations
type BarbershopRepository interface {
	// Create creates a new barbershop
	Create(ctx context.Context, barbershop *entity.Barbershop) error

	// GetByID retrieves a barbershop by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Barbershop, error)

	// GetBySlug retrieves a barbershop by its public slug
	GetBySlug(ctx context.Context, slug string) (*entity.Barbershop, error)

	// Update updates an existing barbershop
	Update(ctx context.Context, barbershop *entity.Barbershop) error

	// SlugExists checks if a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListAll retrieves all barbershops (for super admin use)
	ListAll(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Barbershop, int64, error)

	// Count returns the total number of barbershops
	Count(ctx context.Context) (int64, error)
}

// BarbershopCache caches public slug lookups
type BarbershopCache interface {
	// Get returns nil, nil on a cache miss
	Get(ctx context.Context, slug string) (*entity.Barbershop, error)
	Set(ctx context.Context, barbershop *entity.Barbershop) error
	Invalidate(ctx context.Context, slug string) error
}
