package cache

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
)

// cachedBarbershop is the public subset of a barbershop kept in Redis; the owner email stays out
type cachedBarbershop struct {
	ID                    uuid.UUID                 `json:"id"`
	Name                  string                    `json:"name"`
	Slug                  string                    `json:"slug"`
	Phone                 *string                   `json:"phone,omitempty"`
	Address               *string                   `json:"address,omitempty"`
	LogoURL               *string                   `json:"logo_url,omitempty"`
	Plan                  string                    `json:"plan"`
	SubscriptionStatus    enum.SubscriptionStatus   `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time                `json:"subscription_expires_at,omitempty"`
	Settings              entity.BarbershopSettings `json:"settings"`
}

func fromEntity(b *entity.Barbershop) cachedBarbershop {
	return cachedBarbershop{
		ID:                    b.ID,
		Name:                  b.Name,
		Slug:                  b.Slug,
		Phone:                 b.Phone,
		Address:               b.Address,
		LogoURL:               b.LogoURL,
		Plan:                  b.Plan,
		SubscriptionStatus:    b.SubscriptionStatus,
		SubscriptionExpiresAt: b.SubscriptionExpiresAt,
		Settings:              b.Settings,
	}
}

func (c cachedBarbershop) toEntity() *entity.Barbershop {
	return &entity.Barbershop{
		ID:                    c.ID,
		Name:                  c.Name,
		Slug:                  c.Slug,
		Phone:                 c.Phone,
		Address:               c.Address,
		LogoURL:               c.LogoURL,
		Plan:                  c.Plan,
		SubscriptionStatus:    c.SubscriptionStatus,
		SubscriptionExpiresAt: c.SubscriptionExpiresAt,
		Settings:              c.Settings,
	}
}
