package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/barbershop-api/internal/config"
	domainRepo "github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/internal/presentation/http/handler"
	"github.com/sangkips/barbershop-api/internal/presentation/http/middleware"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/sangkips/barbershop-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Barbershop   *handler.BarbershopHandler
	Professional *handler.ProfessionalHandler
	Catalog      *handler.CatalogHandler
	Booking      *handler.BookingHandler
	Commission   *handler.CommissionHandler
	Payout       *handler.PayoutHandler
	Dashboard    *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager         *utils.JWTManager
	Cfg                *config.Config
	IdempotencyRepo    domainRepo.IdempotencyRepository
	BarbershopResolver middleware.BarbershopResolver
	RateLimiter        *middleware.BarbershopRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		apperror.UseJSONFieldNames(v)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Cfg.Metrics.Enabled {
		router.Use(middleware.Metrics())
		router.GET(deps.Cfg.Metrics.Path, middleware.MetricsHandler())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"rate_limiter": deps.RateLimiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("/public/barbershops/:slug")
		public.Use(middleware.PublicBarbershop(deps.BarbershopResolver))
		public.Use(deps.RateLimiter.Middleware())
		registerPublicRoutes(public, h, deps)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(middleware.RoleSuperAdmin))
		registerAdminRoutes(admin, h)

		shop := protected.Group("")
		shop.Use(middleware.RequireBarbershop())
		shop.Use(deps.RateLimiter.Middleware())
		registerBarbershopRoutes(shop, h, deps)
	}

	return router
}

func registerPublicRoutes(public *gin.RouterGroup, h *Handlers, deps *Deps) {
	public.GET("", h.Barbershop.GetPublic)
	public.GET("/professionals", h.Professional.ListPublic)
	public.GET("/services", h.Catalog.ListPublic)
	// Bookings retried by the page with the same Idempotency-Key are created once
	public.POST("/bookings", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Booking.CreatePublic)
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers) {
	barbershops := admin.Group("/barbershops")
	{
		barbershops.GET("", h.Barbershop.List)
		barbershops.POST("", h.Barbershop.Create)
		barbershops.GET("/:id", h.Barbershop.Get)
		barbershops.PATCH("/:id/subscription", h.Barbershop.UpdateSubscription)
	}
}

func registerBarbershopRoutes(shop *gin.RouterGroup, h *Handlers, deps *Deps) {
	barbershop := shop.Group("/barbershop")
	{
		barbershop.GET("", h.Barbershop.GetCurrent)
		barbershop.PUT("", middleware.RequirePermission("manage-barbershop"), h.Barbershop.UpdateCurrent)
	}

	shop.GET("/dashboard", middleware.RequirePermission("view-reports"), h.Dashboard.GetStats)

	registerProfessionalRoutes(shop, h)
	registerServiceRoutes(shop, h)
	registerBookingRoutes(shop, h)
	registerCommissionRoutes(shop, h)
	registerPayoutRoutes(shop, h, deps)
}

func registerProfessionalRoutes(shop *gin.RouterGroup, h *Handlers) {
	professionals := shop.Group("/professionals")
	professionals.Use(middleware.RequirePermission("manage-professionals"))
	{
		professionals.GET("", h.Professional.List)
		professionals.POST("", h.Professional.Create)
		professionals.GET("/:id", h.Professional.Get)
		professionals.PUT("/:id", h.Professional.Update)
		professionals.DELETE("/:id", h.Professional.Delete)
	}
}

func registerServiceRoutes(shop *gin.RouterGroup, h *Handlers) {
	services := shop.Group("/services")
	services.Use(middleware.RequirePermission("manage-services"))
	{
		services.GET("", h.Catalog.List)
		services.POST("", h.Catalog.Create)
		services.GET("/:id", h.Catalog.Get)
		services.PUT("/:id", h.Catalog.Update)
		services.DELETE("/:id", h.Catalog.Delete)
	}
}

func registerBookingRoutes(shop *gin.RouterGroup, h *Handlers) {
	bookings := shop.Group("/bookings")
	bookings.Use(middleware.RequirePermission("manage-bookings"))
	{
		bookings.GET("", h.Booking.List)
		bookings.GET("/:id", h.Booking.Get)
		bookings.PATCH("/:id/status", h.Booking.UpdateStatus)
	}
}

func registerCommissionRoutes(shop *gin.RouterGroup, h *Handlers) {
	commissions := shop.Group("/commissions")
	commissions.Use(middleware.RequirePermission("manage-commissions"))
	{
		commissions.GET("/rates", h.Commission.ListRates)
		commissions.PUT("/rates/:id", h.Commission.SetRate)
		commissions.GET("/rates/:id/history", h.Commission.ListHistory)
		commissions.GET("/report", h.Commission.Report)
		commissions.GET("/report/export", h.Commission.Export)
	}
}

func registerPayoutRoutes(shop *gin.RouterGroup, h *Handlers, deps *Deps) {
	payouts := shop.Group("/payouts")
	payouts.Use(middleware.RequirePermission("manage-payouts"))
	{
		payouts.GET("", h.Payout.List)
		payouts.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:     deps.IdempotencyRepo,
			Required: true,
		}), h.Payout.Create)
		payouts.GET("/:id", h.Payout.Get)
		payouts.PATCH("/:id/status", h.Payout.UpdateStatus)
	}
}
