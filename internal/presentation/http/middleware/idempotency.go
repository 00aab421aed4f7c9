package middleware

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware.
// When Required is set, requests without a key are rejected.
type IdempotencyConfig struct {
	Repo     repository.IdempotencyRepository
	Required bool
}

// bodyRecorder wraps gin.ResponseWriter to capture the response body
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// idempotencyScope is who a key belongs to: the authenticated user within the
// barbershop of the request, or the barbershop slug on public routes
func idempotencyScope(c *gin.Context) string {
	if val, exists := c.Get("user_id"); exists {
		if userID, ok := val.(uuid.UUID); ok && userID != uuid.Nil {
			scope := "user:" + userID.String()
			if barbershopID, ok := infraRepo.GetBarbershopID(c.Request.Context()); ok {
				scope += ":barbershop:" + barbershopID.String()
			}
			return scope
		}
	}
	if slug := c.Param("slug"); slug != "" {
		return "slug:" + slug
	}
	return ""
}

// Idempotency replays the stored response of a request already made with the same
// Idempotency-Key, so retried bookings and payouts are not recorded twice.
// Only 2xx responses are stored.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		scope := idempotencyScope(c)
		if key == "" || scope == "" {
			if config.Required {
				response.ErrorWithCode(c, http.StatusBadRequest, IdempotencyKeyHeader+" header is required for this request")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, scope)
		if err != nil {
			log.Printf("Idempotency lookup failed (%s): %v", scope, err)
			if config.Required {
				response.ErrorWithCode(c, http.StatusInternalServerError, "Failed to check idempotency key")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		recorder := &bodyRecorder{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          key,
			Scope:        scope,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			ResponseCode: status,
			ResponseBody: recorder.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			log.Printf("Failed to store idempotency key (%s): %v", scope, err)
		}
	}
}
