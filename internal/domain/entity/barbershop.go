package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Barbershop is the tenant of the system; every professional, service and booking belongs to one
type Barbershop struct {
	ID                    uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	Name                  string                  `gorm:"size:255;not null" json:"name"`
	Slug                  string                  `gorm:"size:255;unique;not null" json:"slug"`
	OwnerEmail            string                  `gorm:"size:255;not null" json:"owner_email"`
	Phone                 *string                 `gorm:"size:50" json:"phone,omitempty"`
	Address               *string                 `gorm:"type:text" json:"address,omitempty"`
	LogoURL               *string                 `gorm:"size:512" json:"logo_url,omitempty"`
	Plan                  string                  `gorm:"size:50;default:'basic'" json:"plan"`
	SubscriptionStatus    enum.SubscriptionStatus `gorm:"size:20;default:'trial';index" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time              `json:"subscription_expires_at,omitempty"`
	Settings              BarbershopSettings      `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
	DeletedAt             gorm.DeletedAt          `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new barbershop
func (b *Barbershop) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Barbershop model
func (Barbershop) TableName() string {
	return "barbershops"
}

// BarbershopSettings holds per-barbershop preferences shown in the admin dashboard
type BarbershopSettings struct {
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Locale     string `json:"locale,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// DefaultCommissionRate pre-fills the payout form; it is not used by the report
	DefaultCommissionRate float64 `json:"default_commission_rate,omitempty"`

	SlotIntervalMinutes int  `json:"slot_interval_minutes,omitempty"`
	AllowOnlineBooking  bool `json:"allow_online_booking"`
}

// Scan implements the sql.Scanner interface for BarbershopSettings
func (s *BarbershopSettings) Scan(value interface{}) error {
	if value == nil {
		*s = BarbershopSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan BarbershopSettings: unsupported type")
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for BarbershopSettings
func (s BarbershopSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// DefaultBarbershopSettings returns default settings for new barbershops
func DefaultBarbershopSettings() BarbershopSettings {
	return BarbershopSettings{
		Currency:              "BRL",
		Timezone:              "America/Sao_Paulo",
		Locale:                "pt-BR",
		DateFormat:            "DD/MM/YYYY",
		DefaultCommissionRate: 50,
		SlotIntervalMinutes:   30,
		AllowOnlineBooking:    true,
	}
}

// AcceptsBookings reports whether the public booking page should take new bookings
func (b *Barbershop) AcceptsBookings() bool {
	return b.Settings.AllowOnlineBooking && b.SubscriptionStatus.AcceptsBookings()
}
