package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/pkg/money"
	"gorm.io/gorm"
)

// CommissionPayment is a payout ledger entry for a professional and period.
// Amounts are entered by an admin and are not derived from the commission report.
type CommissionPayment struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BarbershopID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"barbershop_id"`
	ProfessionalID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"professional_id"`
	PeriodStart      time.Time          `gorm:"type:date;not null" json:"-"`
	PeriodEnd        time.Time          `gorm:"type:date;not null" json:"-"`
	GrossAmount      int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CommissionRate   float64            `gorm:"type:numeric(5,2);not null" json:"commission_rate"`
	CommissionAmount int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Status           enum.PaymentStatus `gorm:"size:20;default:'pending';index" json:"status"`
	PaidAt           *time.Time         `json:"paid_at"`
	Notes            *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Professional *Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p CommissionPayment) MarshalJSON() ([]byte, error) {
	type Alias CommissionPayment
	return json.Marshal(&struct {
		Alias
		PeriodStart      string  `json:"period_start"`
		PeriodEnd        string  `json:"period_end"`
		GrossAmount      float64 `json:"gross_amount"`
		CommissionAmount float64 `json:"commission_amount"`
	}{
		Alias:            Alias(p),
		PeriodStart:      p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        p.PeriodEnd.Format("2006-01-02"),
		GrossAmount:      money.CentsToFloat(p.GrossAmount),
		CommissionAmount: money.CentsToFloat(p.CommissionAmount),
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *CommissionPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionPayment model
func (CommissionPayment) TableName() string {
	return "commission_payments"
}
