package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/commission"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/internal/infrastructure/metrics"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/pagination"
	"github.com/sangkips/barbershop-api/pkg/utils"
)

// maxSlugAttempts bounds the suffixes tried when a derived slug is taken
const maxSlugAttempts = 20

// BarbershopService handles barbershop (tenant) operations
type BarbershopService struct {
	barbershopRepo repository.BarbershopRepository
	cache          repository.BarbershopCache
}

// NewBarbershopService creates a new barbershop service. cache may be nil.
func NewBarbershopService(barbershopRepo repository.BarbershopRepository, cache repository.BarbershopCache) *BarbershopService {
	return &BarbershopService{barbershopRepo: barbershopRepo, cache: cache}
}

// CreateBarbershopInput represents input for creating a barbershop
type CreateBarbershopInput struct {
	Name       string
	Slug       string
	OwnerEmail string
	Plan       string
	Phone      *string
	Address    *string
}

// CreateBarbershop creates a new barbershop in trial.
// An explicit slug must be free; a slug derived from the name gets a numeric suffix when taken.
func (s *BarbershopService) CreateBarbershop(ctx context.Context, input *CreateBarbershopInput) (*entity.Barbershop, error) {
	explicit := strings.TrimSpace(input.Slug) != ""
	base := utils.Slugify(input.Slug)
	if !explicit {
		base = utils.Slugify(input.Name)
	}
	if base == "" {
		return nil, apperror.NewFieldError("slug", "must contain letters or digits")
	}

	slug, err := s.freeSlug(ctx, base, explicit)
	if err != nil {
		return nil, err
	}

	plan := input.Plan
	if plan == "" {
		plan = "basic"
	}

	barbershop := &entity.Barbershop{
		Name:               input.Name,
		Slug:               slug,
		OwnerEmail:         input.OwnerEmail,
		Phone:              input.Phone,
		Address:            input.Address,
		Plan:               plan,
		SubscriptionStatus: enum.SubscriptionStatusTrial,
		Settings:           entity.DefaultBarbershopSettings(),
	}

	if err := s.barbershopRepo.Create(ctx, barbershop); err != nil {
		return nil, err
	}

	log.Printf("Barbershop created: %s (%s)", barbershop.Slug, barbershop.ID)
	return barbershop, nil
}

func (s *BarbershopService) freeSlug(ctx context.Context, base string, explicit bool) (string, error) {
	attempts := maxSlugAttempts
	if explicit {
		attempts = 1
	}

	for n := 1; n <= attempts; n++ {
		candidate := utils.SlugCandidate(base, n)
		exists, err := s.barbershopRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", apperror.NewConflictError("Barbershop slug already exists")
}

// GetBarbershop retrieves a barbershop by ID
func (s *BarbershopService) GetBarbershop(ctx context.Context, id uuid.UUID) (*entity.Barbershop, error) {
	barbershop, err := s.barbershopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if barbershop == nil {
		return nil, apperror.NewNotFoundError("Barbershop")
	}
	return barbershop, nil
}

// ListBarbershops lists all barbershops (super admin)
func (s *BarbershopService) ListBarbershops(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Barbershop], error) {
	barbershops, total, err := s.barbershopRepo.ListAll(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(barbershops, pag), nil
}

// GetPublicBySlug resolves a slug for the public booking page, through the cache when available
func (s *BarbershopService) GetPublicBySlug(ctx context.Context, slug string) (*entity.Barbershop, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, slug)
		switch {
		case err != nil:
			metrics.SlugCacheLookups.WithLabelValues("error").Inc()
			log.Printf("Barbershop cache read failed (%s): %v", slug, err)
		case cached != nil:
			metrics.SlugCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.SlugCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	barbershop, err := s.barbershopRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if barbershop == nil {
		return nil, apperror.NewNotFoundError("Barbershop")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, barbershop); err != nil {
			log.Printf("Barbershop cache write failed (%s): %v", slug, err)
		}
	}

	return barbershop, nil
}

// UpdateSubscriptionInput represents input for changing a barbershop's subscription
type UpdateSubscriptionInput struct {
	ID        uuid.UUID
	Status    enum.SubscriptionStatus
	Plan      *string
	ExpiresAt *time.Time
}

// UpdateSubscription changes the subscription status and plan (super admin)
func (s *BarbershopService) UpdateSubscription(ctx context.Context, input *UpdateSubscriptionInput) (*entity.Barbershop, error) {
	if !input.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of: trial, active, past_due, suspended, cancelled")
	}

	barbershop, err := s.GetBarbershop(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	barbershop.SubscriptionStatus = input.Status
	if input.Plan != nil {
		barbershop.Plan = *input.Plan
	}
	if input.ExpiresAt != nil {
		barbershop.SubscriptionExpiresAt = input.ExpiresAt
	}

	if err := s.barbershopRepo.Update(ctx, barbershop); err != nil {
		return nil, err
	}
	s.invalidate(ctx, barbershop.Slug)

	log.Printf("Barbershop %s subscription set to %s", barbershop.Slug, barbershop.SubscriptionStatus)
	return barbershop, nil
}

// UpdateProfileInput represents input for updating a barbershop's own profile
type UpdateProfileInput struct {
	ID       uuid.UUID
	Name     *string
	Phone    *string
	Address  *string
	LogoURL  *string
	Settings *entity.BarbershopSettings
}

// UpdateProfile updates the profile of the caller's barbershop
func (s *BarbershopService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.Barbershop, error) {
	barbershop, err := s.GetBarbershop(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		barbershop.Name = *input.Name
	}
	if input.Phone != nil {
		barbershop.Phone = input.Phone
	}
	if input.Address != nil {
		barbershop.Address = input.Address
	}
	if input.LogoURL != nil {
		barbershop.LogoURL = input.LogoURL
	}
	if input.Settings != nil {
		if err := commission.ValidateRate(input.Settings.DefaultCommissionRate); err != nil {
			return nil, apperror.NewFieldError("settings.default_commission_rate", err.Error())
		}
		barbershop.Settings = *input.Settings
	}

	if err := s.barbershopRepo.Update(ctx, barbershop); err != nil {
		return nil, err
	}
	s.invalidate(ctx, barbershop.Slug)

	return barbershop, nil
}

func (s *BarbershopService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		log.Printf("Barbershop cache invalidation failed (%s): %v", slug, err)
	}
}
