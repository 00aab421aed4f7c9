package request

// SetCommissionRateRequest sets the commission rate of a professional.
// The rate is a pointer so a missing value is told apart from 0.
type SetCommissionRateRequest struct {
	CommissionRate *float64 `json:"commission_rate" binding:"required,gte=0,lte=100"`
}

// CommissionReportRequest selects the bookings of a commission report.
// ProfessionalID is a UUID or "all".
type CommissionReportRequest struct {
	DateStart      string `form:"date_start" binding:"required,datetime=2006-01-02"`
	DateEnd        string `form:"date_end" binding:"required,datetime=2006-01-02"`
	ProfessionalID string `form:"professional_id"`
}

// DateRangeRequest represents an optional reporting window
type DateRangeRequest struct {
	DateStart string `form:"date_start" binding:"omitempty,datetime=2006-01-02"`
	DateEnd   string `form:"date_end" binding:"omitempty,datetime=2006-01-02"`
}

// CreatePayoutRequest records a payout in the ledger
type CreatePayoutRequest struct {
	ProfessionalID string   `json:"professional_id" binding:"required,uuid"`
	PeriodStart    string   `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd      string   `json:"period_end" binding:"required,datetime=2006-01-02"`
	GrossAmount    float64  `json:"gross_amount" binding:"gte=0,lte=1000000000"`
	CommissionRate *float64 `json:"commission_rate" binding:"omitempty,gte=0,lte=100"`
	Notes          *string  `json:"notes" binding:"omitempty,max=1000"`
}

// UpdatePayoutStatusRequest toggles a ledger entry between pending and paid
type UpdatePayoutStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid"`
}

// PayoutFilterRequest represents ledger list parameters
type PayoutFilterRequest struct {
	ProfessionalID string `form:"professional_id"`
	Status         string `form:"status" binding:"omitempty,oneof=pending paid"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
}
