package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sangkips/barbershop-api/internal/config"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/pkg/utils"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection.
// SQL logs go through the standard logger's writer so they share its destinations.
func NewPostgresDB(cfg *config.DatabaseConfig, logCfg *config.LogConfig) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  ParseLogLevel(logCfg.SQLLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// ParseLogLevel maps LOG_SQL_LEVEL to a gorm log level; unknown values mean warn
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenants
		&entity.Barbershop{},

		// Catalog and staff
		&entity.Professional{},
		&entity.Service{},

		// Scheduling
		&entity.Booking{},

		// Commissions
		&entity.CommissionRate{},
		&entity.CommissionRateHistory{},
		&entity.CommissionPayment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates a demo barbershop when SEED_BARBERSHOP_NAME is set
func SeedDefaultData(db *gorm.DB) error {
	name := viper.GetString("SEED_BARBERSHOP_NAME")
	if name == "" {
		return nil
	}

	log.Println("Seeding default data...")

	slug := viper.GetString("SEED_BARBERSHOP_SLUG")
	if slug == "" {
		slug = utils.Slugify(name)
	}

	var existing entity.Barbershop
	if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		log.Printf("Seed barbershop already exists: %s", slug)
		return nil
	}

	barbershop := entity.Barbershop{
		Name:               name,
		Slug:               slug,
		OwnerEmail:         viper.GetString("SEED_BARBERSHOP_OWNER_EMAIL"),
		Plan:               "basic",
		SubscriptionStatus: enum.SubscriptionStatusTrial,
		Settings:           entity.DefaultBarbershopSettings(),
	}
	if err := db.Create(&barbershop).Error; err != nil {
		return fmt.Errorf("failed to seed barbershop: %w", err)
	}

	log.Printf("Seed barbershop created: %s (%s)", barbershop.Slug, barbershop.ID)
	return nil
}
