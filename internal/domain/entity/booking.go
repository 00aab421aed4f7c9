package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking is an appointment of a client with a professional
type Booking struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BarbershopID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"barbershop_id"`
	ProfessionalID uuid.UUID          `gorm:"type:uuid;not null;index" json:"professional_id"`
	ServiceID      *uuid.UUID         `gorm:"type:uuid;index" json:"service_id,omitempty"`
	ClientName     string             `gorm:"size:255;not null" json:"client_name"`
	ClientPhone    string             `gorm:"size:50" json:"client_phone"`
	ClientEmail    *string            `gorm:"size:255" json:"client_email,omitempty"`
	BookingDate    time.Time          `gorm:"type:date;not null;index" json:"booking_date"`
	BookingTime    string             `gorm:"size:5" json:"booking_time"` // HH:MM, local to the barbershop
	Status         enum.BookingStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Price          *int64             `json:"-"` // Stored in cents, excluded from JSON
	TotalPrice     *int64             `json:"-"` // Stored in cents, excluded from JSON
	Notes          *string            `gorm:"type:text" json:"notes,omitempty"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	CancelledAt    *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Professional *Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Service      *Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Booking) MarshalJSON() ([]byte, error) {
	type Alias Booking
	return json.Marshal(&struct {
		Alias
		BookingDate string   `json:"booking_date"`
		Price       *float64 `json:"price"`
		TotalPrice  *float64 `json:"total_price"`
	}{
		Alias:       Alias(b),
		BookingDate: b.BookingDate.Format("2006-01-02"),
		Price:       centsPtrToFloat(b.Price),
		TotalPrice:  centsPtrToFloat(b.TotalPrice),
	})
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// Amount returns the amount charged for the booking: total price when set,
// otherwise the list price, otherwise zero
func (b *Booking) Amount() decimal.Decimal {
	if b.TotalPrice != nil {
		return money.FromCents(*b.TotalPrice)
	}
	if b.Price != nil {
		return money.FromCents(*b.Price)
	}
	return decimal.Zero
}

func centsPtrToFloat(cents *int64) *float64 {
	if cents == nil {
		return nil
	}
	f := money.CentsToFloat(*cents)
	return &f
}
