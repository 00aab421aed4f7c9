package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/barbershop-api/pkg/apperror"
)

// BarbershopHeader lets super admins act inside a barbershop
const BarbershopHeader = "X-Barbershop-ID"

// BarbershopResolver looks a barbershop up by its public slug
type BarbershopResolver interface {
	GetPublicBySlug(ctx context.Context, slug string) (*entity.Barbershop, error)
}

// PublicBarbershop resolves the :slug path parameter and scopes the request to that barbershop
func PublicBarbershop(resolver BarbershopResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
		if slug == "" {
			response.Error(c, apperror.NewNotFoundError("Barbershop"))
			c.Abort()
			return
		}

		barbershop, err := resolver.GetPublicBySlug(c.Request.Context(), slug)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("barbershop", barbershop)
		ctx := infraRepo.WithBarbershop(c.Request.Context(), barbershop.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireBarbershop ensures the request is scoped to a barbershop.
// Super admins choose one with the X-Barbershop-ID header.
func RequireBarbershop() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader(BarbershopHeader); header != "" && hasAny(c, "user_roles", RoleSuperAdmin) {
			id, err := uuid.Parse(header)
			if err != nil {
				response.Error(c, apperror.NewBadRequestError("Invalid "+BarbershopHeader+" header"))
				c.Abort()
				return
			}
			c.Request = c.Request.WithContext(infraRepo.WithBarbershop(c.Request.Context(), id))
		}

		if _, ok := infraRepo.GetBarbershopID(c.Request.Context()); !ok {
			response.Error(c, apperror.ErrBarbershopRequired)
			c.Abort()
			return
		}

		c.Next()
	}
}
