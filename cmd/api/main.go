package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/barbershop-api/internal/application/service"
	"github.com/sangkips/barbershop-api/internal/config"
	domainRepo "github.com/sangkips/barbershop-api/internal/domain/repository"
	"github.com/sangkips/barbershop-api/internal/infrastructure/cache"
	"github.com/sangkips/barbershop-api/internal/infrastructure/database"
	"github.com/sangkips/barbershop-api/internal/infrastructure/logging"
	"github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/internal/presentation/http/handler"
	"github.com/sangkips/barbershop-api/internal/presentation/http/middleware"
	"github.com/sangkips/barbershop-api/internal/presentation/http/routes"
	"github.com/sangkips/barbershop-api/pkg/utils"
)

const (
	shutdownTimeout         = 15 * time.Second
	idempotencyCleanupEvery = time.Hour
)

func main() {
	// Load configuration
	cfg := config.Load()

	logWriter, closeLog := logging.Setup(&cfg.Log)
	defer closeLog()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logWriter
	gin.DefaultErrorWriter = logWriter

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, &cfg.Log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Slug cache is optional; the API serves from Postgres without it
	var barbershopCache domainRepo.BarbershopCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Redis unavailable, slug cache disabled: %v", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		barbershopCache = cache.NewBarbershopCache(redisClient, cfg.Redis.Prefix, cfg.Redis.CacheTTL)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	// Initialize repositories
	barbershopRepo := repository.NewBarbershopRepository(db)
	professionalRepo := repository.NewProfessionalRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	rateRepo := repository.NewCommissionRateRepository(db)
	paymentRepo := repository.NewCommissionPaymentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	barbershopService := service.NewBarbershopService(barbershopRepo, barbershopCache)
	professionalService := service.NewProfessionalService(professionalRepo)
	catalogService := service.NewCatalogService(serviceRepo)
	bookingService := service.NewBookingService(bookingRepo, professionalRepo, serviceRepo)
	commissionService := service.NewCommissionService(rateRepo, professionalRepo, bookingRepo)
	payoutService := service.NewPayoutService(paymentRepo, professionalRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, commissionService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Barbershop:   handler.NewBarbershopHandler(barbershopService),
		Professional: handler.NewProfessionalHandler(professionalService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Booking:      handler.NewBookingHandler(bookingService),
		Commission:   handler.NewCommissionHandler(commissionService, barbershopService),
		Payout:       handler.NewPayoutHandler(payoutService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	rateLimiter := middleware.NewBarbershopRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:         jwtManager,
		Cfg:                cfg,
		IdempotencyRepo:    idempotencyRepo,
		BarbershopResolver: barbershopService,
		RateLimiter:        rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Println("Shutting down server...")
	case err := <-serverErr:
		log.Printf("Failed to start server: %v", err)
		exitCode = 1
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
	if exitCode != 0 {
		closeLog()
		os.Exit(exitCode)
	}
}

// purgeIdempotencyKeys deletes expired idempotency keys until ctx is done
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencyCleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Printf("Failed to purge idempotency keys: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
