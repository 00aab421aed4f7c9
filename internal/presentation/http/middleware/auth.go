package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/barbershop-api/pkg/utils"
)

// RoleSuperAdmin is the platform staff role that manages every barbershop
const RoleSuperAdmin = "super-admin"

// AuthMiddleware creates a JWT authentication middleware.
// A token bound to a barbershop scopes every repository call of the request to it.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("user_permissions", claims.Permissions)

		if claims.BarbershopID != nil {
			ctx := infraRepo.WithBarbershop(c.Request.Context(), *claims.BarbershopID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// RequirePermission creates a middleware that requires a specific permission.
// Super admins pass every permission check.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hasAny(c, "user_roles", RoleSuperAdmin) || hasAny(c, "user_permissions", permission) {
			c.Next()
			return
		}

		response.Forbidden(c, "You do not have permission to perform this action")
		c.Abort()
	}
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasAny(c, "user_roles", roles...) {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}

// hasAny reports whether the string list stored under key holds one of wanted
func hasAny(c *gin.Context, key string, wanted ...string) bool {
	val, exists := c.Get(key)
	if !exists {
		return false
	}
	list, ok := val.([]string)
	if !ok {
		return false
	}

	for _, have := range list {
		for _, w := range wanted {
			if have == w {
				return true
			}
		}
	}
	return false
}
