package request

import "time"

// CreateBarbershopRequest represents a barbershop creation request (super admin)
type CreateBarbershopRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	Slug       string  `json:"slug" binding:"omitempty,max=255"`
	OwnerEmail string  `json:"owner_email" binding:"required,email"`
	Plan       string  `json:"plan" binding:"omitempty,max=50"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Address    *string `json:"address"`
}

// UpdateSubscriptionRequest represents a subscription change (super admin)
type UpdateSubscriptionRequest struct {
	Status    string     `json:"status" binding:"required,oneof=trial active past_due suspended cancelled"`
	Plan      *string    `json:"plan" binding:"omitempty,max=50"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// BarbershopSettingsRequest represents the editable settings of a barbershop
type BarbershopSettingsRequest struct {
	Currency              string  `json:"currency" binding:"omitempty,len=3"`
	Timezone              string  `json:"timezone" binding:"omitempty,max=64"`
	Locale                string  `json:"locale" binding:"omitempty,max=16"`
	DateFormat            string  `json:"date_format" binding:"omitempty,max=32"`
	DefaultCommissionRate float64 `json:"default_commission_rate" binding:"gte=0,lte=100"`
	SlotIntervalMinutes   int     `json:"slot_interval_minutes" binding:"omitempty,min=5,max=240"`
	AllowOnlineBooking    bool    `json:"allow_online_booking"`
}

// UpdateBarbershopProfileRequest represents an update of the caller's barbershop
type UpdateBarbershopProfileRequest struct {
	Name     *string                    `json:"name" binding:"omitempty,min=2,max=255"`
	Phone    *string                    `json:"phone" binding:"omitempty,max=50"`
	Address  *string                    `json:"address"`
	LogoURL  *string                    `json:"logo_url" binding:"omitempty,url"`
	Settings *BarbershopSettingsRequest `json:"settings"`
}
