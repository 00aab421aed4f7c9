package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an item of a barbershop's catalog (haircut, beard trim, ...)
type Service struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BarbershopID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"barbershop_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int            `gorm:"not null;default:30" json:"duration_minutes"`
	Price           int64          `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Service) MarshalJSON() ([]byte, error) {
	type Alias Service
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(s),
		Price: float64(s.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
