package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/commission"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/pkg/apperror"
)

const dateLayout = "2006-01-02"

// allProfessionals is the professional filter value selecting every professional
const allProfessionals = "all"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	list, _ := roles.([]string)
	return list
}

// IsSuperAdmin checks if the user has the super-admin role
func IsSuperAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "super-admin" {
			return true
		}
	}
	return false
}

// GetBarbershopID returns the barbershop the request is scoped to
func GetBarbershopID(c *gin.Context) (uuid.UUID, bool) {
	return infraRepo.GetBarbershopID(c.Request.Context())
}

// paramUUID parses a path parameter as a UUID
func paramUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid " + strings.ReplaceAll(name, "_", " "))
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD value as midnight UTC
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperror.NewFieldError(field, "must be a date formatted as YYYY-MM-DD")
	}
	return t, nil
}

// parseProfessionalFilter maps "" and "all" to nil, anything else must be a UUID
func parseProfessionalFilter(field, value string) (*uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, allProfessionals) {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperror.NewFieldError(field, `must be a professional id or "all"`)
	}
	return &id, nil
}

// reportFilter builds the commission report filter from query values
func reportFilter(dateStart, dateEnd, professionalID string) (commission.FilterConfig, error) {
	var filter commission.FilterConfig
	var err error

	if filter.DateStart, err = parseDate("date_start", dateStart); err != nil {
		return filter, err
	}
	if filter.DateEnd, err = parseDate("date_end", dateEnd); err != nil {
		return filter, err
	}
	if filter.ProfessionalID, err = parseProfessionalFilter("professional_id", professionalID); err != nil {
		return filter, err
	}
	return filter, nil
}

// currentMonth returns the first and last day of the month of now
func currentMonth(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}
