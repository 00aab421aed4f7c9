package request

// CreateProfessionalRequest represents a professional creation request
type CreateProfessionalRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,url"`
	Bio      *string `json:"bio"`
	IsActive *bool   `json:"is_active"`
}

// UpdateProfessionalRequest represents a professional update request
type UpdateProfessionalRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,url"`
	Bio      *string `json:"bio"`
	IsActive *bool   `json:"is_active"`
}

// ProfessionalFilterRequest represents professional list parameters
type ProfessionalFilterRequest struct {
	Search  string `form:"search"`
	Active  *bool  `form:"active"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// CreateServiceRequest represents a catalog service creation request
type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Description     *string `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,min=5,max=600"`
	Price           float64 `json:"price" binding:"gte=0,lte=1000000000"`
}

// UpdateServiceRequest represents a catalog service update request
type UpdateServiceRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=5,max=600"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0,lte=1000000000"`
	IsActive        *bool    `json:"is_active"`
}
