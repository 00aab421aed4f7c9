package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommissionRate is the current commission percentage of a professional at a barbershop.
// There is at most one row per (professional, barbershop).
type CommissionRate struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BarbershopID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_commission_rate_professional" json:"barbershop_id"`
	ProfessionalID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_commission_rate_professional" json:"professional_id"`
	CommissionRate float64        `gorm:"type:numeric(5,2);not null" json:"commission_rate"` // Percent, 0-100
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new commission rate
func (r *CommissionRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionRate model
func (CommissionRate) TableName() string {
	return "commission_rates"
}

// CommissionRateHistory records every change of a professional's rate
type CommissionRateHistory struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BarbershopID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"barbershop_id"`
	ProfessionalID uuid.UUID  `gorm:"type:uuid;not null;index" json:"professional_id"`
	OldRate        *float64   `gorm:"type:numeric(5,2)" json:"old_rate"`
	NewRate        float64    `gorm:"type:numeric(5,2);not null" json:"new_rate"`
	ChangedBy      *uuid.UUID `gorm:"type:uuid" json:"changed_by,omitempty"`
	ChangedAt      time.Time  `gorm:"not null;index" json:"changed_at"`
}

// BeforeCreate generates a UUID before creating a new history row
func (h *CommissionRateHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionRateHistory model
func (CommissionRateHistory) TableName() string {
	return "commission_rate_history"
}
