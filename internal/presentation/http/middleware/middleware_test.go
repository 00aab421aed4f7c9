package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/infrastructure/metrics"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTManager() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", "barbershop-api", time.Hour)
}

func bearer(t *testing.T, m *utils.JWTManager, subject utils.TokenSubject) string {
	t.Helper()
	token, err := m.GenerateAccessToken(subject)
	require.NoError(t, err)
	return "Bearer " + token
}

// scopeEcho responds with the barbershop the request is scoped to
func scopeEcho(c *gin.Context) {
	id, ok := infraRepo.GetBarbershopID(c.Request.Context())
	if !ok {
		c.String(http.StatusOK, "none")
		return
	}
	c.String(http.StatusOK, id.String())
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := newJWTManager()
	shopID := uuid.New()

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwtManager), scopeEcho)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", status: http.StatusUnauthorized},
		{
			name:   "token from another issuer",
			header: bearer(t, utils.NewJWTManager("test-secret", "someone-else", time.Hour), utils.TokenSubject{UserID: uuid.New()}),
			status: http.StatusUnauthorized,
		},
		{
			name:   "barbershop token",
			header: bearer(t, jwtManager, utils.TokenSubject{UserID: uuid.New(), BarbershopID: &shopID}),
			status: http.StatusOK,
			body:   shopID.String(),
		},
		{
			name:   "platform token",
			header: bearer(t, jwtManager, utils.TokenSubject{UserID: uuid.New(), Roles: []string{RoleSuperAdmin}}),
			status: http.StatusOK,
			body:   "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	jwtManager := newJWTManager()
	shopID := uuid.New()

	r := gin.New()
	r.GET("/payouts", AuthMiddleware(jwtManager), RequirePermission("manage-payouts"), scopeEcho)

	tests := []struct {
		name    string
		subject utils.TokenSubject
		status  int
	}{
		{"granted", utils.TokenSubject{UserID: uuid.New(), BarbershopID: &shopID, Permissions: []string{"view-reports", "manage-payouts"}}, http.StatusOK},
		{"missing", utils.TokenSubject{UserID: uuid.New(), BarbershopID: &shopID, Permissions: []string{"view-reports"}}, http.StatusForbidden},
		{"super admin", utils.TokenSubject{UserID: uuid.New(), Roles: []string{RoleSuperAdmin}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/payouts", nil)
			req.Header.Set("Authorization", bearer(t, jwtManager, tt.subject))
			assert.Equal(t, tt.status, serve(r, req).Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwtManager := newJWTManager()

	r := gin.New()
	r.GET("/admin", AuthMiddleware(jwtManager), RequireRole(RoleSuperAdmin), scopeEcho)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, jwtManager, utils.TokenSubject{UserID: uuid.New(), Roles: []string{"owner"}}))
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, jwtManager, utils.TokenSubject{UserID: uuid.New(), Roles: []string{RoleSuperAdmin}}))
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestRequireBarbershop(t *testing.T) {
	jwtManager := newJWTManager()
	ownShop := uuid.New()
	otherShop := uuid.New()

	r := gin.New()
	r.GET("/dashboard", AuthMiddleware(jwtManager), RequireBarbershop(), scopeEcho)

	owner := bearer(t, jwtManager, utils.TokenSubject{UserID: uuid.New(), BarbershopID: &ownShop, Roles: []string{"owner"}})
	admin := bearer(t, jwtManager, utils.TokenSubject{UserID: uuid.New(), Roles: []string{RoleSuperAdmin}})

	tests := []struct {
		name   string
		token  string
		header string
		status int
		body   string
	}{
		{"owner uses own barbershop", owner, "", http.StatusOK, ownShop.String()},
		{"owner cannot switch barbershop", owner, otherShop.String(), http.StatusOK, ownShop.String()},
		{"super admin without header", admin, "", http.StatusForbidden, ""},
		{"super admin picks barbershop", admin, otherShop.String(), http.StatusOK, otherShop.String()},
		{"super admin with malformed header", admin, "shop-1", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set("Authorization", tt.token)
			if tt.header != "" {
				req.Header.Set(BarbershopHeader, tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

type fakeResolver struct {
	shops map[string]*entity.Barbershop
}

func (f *fakeResolver) GetPublicBySlug(_ context.Context, slug string) (*entity.Barbershop, error) {
	if shop, ok := f.shops[slug]; ok {
		return shop, nil
	}
	return nil, apperror.NewNotFoundError("Barbershop")
}

func TestPublicBarbershop(t *testing.T) {
	shop := &entity.Barbershop{ID: uuid.New(), Name: "Classic Cut", Slug: "classic-cut"}
	resolver := &fakeResolver{shops: map[string]*entity.Barbershop{"classic-cut": shop}}

	r := gin.New()
	r.GET("/public/:slug", PublicBarbershop(resolver), scopeEcho)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/public/Classic-Cut", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, shop.ID.String(), w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/public/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type memoryIdempotencyRepo struct {
	mu    sync.Mutex
	items map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{items: map[string]*entity.IdempotencyKey{}}
}

func (m *memoryIdempotencyRepo) GetByKey(_ context.Context, key, scope string) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[scope+"|"+key], nil
}

func (m *memoryIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[ikey.Scope+"|"+ikey.Key] = ikey
	return nil
}

func (m *memoryIdempotencyRepo) DeleteExpired(context.Context) error {
	return nil
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0

	r := gin.New()
	r.POST("/public/:slug/bookings", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"booking": calls})
	})

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/public/classic-cut/bookings", strings.NewReader(`{}`))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		return serve(r, req)
	}

	first := send("abc")
	require.Equal(t, http.StatusCreated, first.Code)

	second := send("abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	stored := repo.items["slug:classic-cut|abc"]
	require.NotNil(t, stored)
	assert.Equal(t, "POST /public/:slug/bookings", stored.Endpoint)

	// optional keys let keyless requests through
	send("")
	assert.Equal(t, 2, calls)
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	userID := uuid.New()
	fail := true

	r := gin.New()
	r.POST("/payouts", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}, Idempotency(IdempotencyConfig{Repo: repo, Required: true}), func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payouts", strings.NewReader(`{}`))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		return serve(r, req)
	}

	assert.Equal(t, http.StatusBadRequest, send("").Code)

	assert.Equal(t, http.StatusUnprocessableEntity, send("k1").Code)
	assert.Empty(t, repo.items)

	fail = false
	w := send("k1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Contains(t, repo.items, "user:"+userID.String()+"|k1")
}

func TestIdempotencyKeysAreScopedToBarbershop(t *testing.T) {
	jwtManager := newJWTManager()
	repo := newMemoryIdempotencyRepo()
	adminID := uuid.New()
	admin := bearer(t, jwtManager, utils.TokenSubject{UserID: adminID, Roles: []string{RoleSuperAdmin}})
	calls := 0

	r := gin.New()
	r.POST("/payouts", AuthMiddleware(jwtManager), RequireBarbershop(), Idempotency(IdempotencyConfig{Repo: repo, Required: true}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"payout": calls})
	})

	send := func(barbershopID uuid.UUID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payouts", strings.NewReader(`{}`))
		req.Header.Set("Authorization", admin)
		req.Header.Set(BarbershopHeader, barbershopID.String())
		req.Header.Set(IdempotencyKeyHeader, "same-key")
		return serve(r, req)
	}

	shopA, shopB := uuid.New(), uuid.New()

	first := send(shopA)
	require.Equal(t, http.StatusCreated, first.Code)

	other := send(shopB)
	assert.Equal(t, http.StatusCreated, other.Code)
	assert.Empty(t, other.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, calls)

	retry := send(shopA)
	assert.Equal(t, "true", retry.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), retry.Body.String())
	assert.Equal(t, 2, calls)

	assert.Contains(t, repo.items, "user:"+adminID.String()+":barbershop:"+shopA.String()+"|same-key")
	assert.Contains(t, repo.items, "user:"+adminID.String()+":barbershop:"+shopB.String()+"|same-key")
}

func TestRateLimiterPerBarbershop(t *testing.T) {
	rl := NewBarbershopRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Minute,
	})
	defer rl.Close()

	shopA := uuid.New()
	shopB := uuid.New()

	r := gin.New()
	r.GET("/shops/:id", func(c *gin.Context) {
		id := uuid.MustParse(c.Param("id"))
		c.Request = c.Request.WithContext(infraRepo.WithBarbershop(c.Request.Context(), id))
		c.Next()
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(id uuid.UUID) int {
		return serve(r, httptest.NewRequest(http.MethodGet, "/shops/"+id.String(), nil)).Code
	}

	assert.Equal(t, http.StatusOK, hit(shopA))
	assert.Equal(t, http.StatusOK, hit(shopA))
	assert.Equal(t, http.StatusTooManyRequests, hit(shopA))

	// another barbershop has its own bucket
	assert.Equal(t, http.StatusOK, hit(shopB))

	assert.Equal(t, 2, rl.Stats()["active_buckets"])
	rl.cleanup(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, rl.Stats()["active_buckets"])
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	cfg = RateLimiterConfigFrom(0, 0)
	assert.Equal(t, 100, cfg.BurstSize)
	assert.InDelta(t, 100.0/60.0, cfg.RequestsPerSecond, 1e-9)
}

func TestMetricsLabelsByRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/payouts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	labels := []string{http.MethodGet, "/payouts/:id", "200"}
	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(labels...))

	serve(r, httptest.NewRequest(http.MethodGet, "/payouts/"+uuid.NewString(), nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/payouts/"+uuid.NewString(), nil))

	assert.Equal(t, before+2, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(labels...)))

	unmatched := []string{http.MethodGet, unmatchedRoute, "404"}
	before = testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(unmatched...))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(unmatched...)))
}
