package request

// CreateBookingRequest represents a booking made on the public page of a barbershop
type CreateBookingRequest struct {
	ProfessionalID string  `json:"professional_id" binding:"required,uuid"`
	ServiceID      string  `json:"service_id" binding:"required,uuid"`
	ClientName     string  `json:"client_name" binding:"required,min=2,max=255"`
	ClientPhone    string  `json:"client_phone" binding:"required,max=50"`
	ClientEmail    *string `json:"client_email" binding:"omitempty,email"`
	BookingDate    string  `json:"booking_date" binding:"required,datetime=2006-01-02"`
	BookingTime    string  `json:"booking_time" binding:"required,datetime=15:04"`
	Notes          *string `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateBookingStatusRequest represents a booking status change.
// TotalPrice overrides the charged amount when completing.
type UpdateBookingStatusRequest struct {
	Status     string   `json:"status" binding:"required,oneof=pending confirmed completed cancelled no_show"`
	TotalPrice *float64 `json:"total_price" binding:"omitempty,gte=0,lte=1000000000"`
}

// BookingFilterRequest represents booking list parameters
type BookingFilterRequest struct {
	Status         string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled no_show"`
	ProfessionalID string `form:"professional_id"`
	DateFrom       string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo         string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Search         string `form:"search"`
}
