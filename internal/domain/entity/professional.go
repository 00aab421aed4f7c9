package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Professional is a barber working at a barbershop
type Professional struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BarbershopID uuid.UUID      `gorm:"type:uuid;not null;index" json:"barbershop_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	Phone        *string        `gorm:"size:50" json:"phone,omitempty"`
	PhotoURL     *string        `gorm:"size:512" json:"photo_url,omitempty"`
	Bio          *string        `gorm:"type:text" json:"bio,omitempty"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Barbershop Barbershop `gorm:"foreignKey:BarbershopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new professional
func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Professional model
func (Professional) TableName() string {
	return "professionals"
}

// ProfessionalSummary is the identity subset embedded in reports
type ProfessionalSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	PhotoURL *string   `json:"photo_url"`
}

// Summary returns the display fields of the professional
func (p *Professional) Summary() ProfessionalSummary {
	return ProfessionalSummary{
		ID:       p.ID,
		Name:     p.Name,
		PhotoURL: p.PhotoURL,
	}
}
