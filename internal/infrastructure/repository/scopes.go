package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// BarbershopIDKey holds the barbershop every barbershop-owned query is limited to
const BarbershopIDKey ctxKey = "barbershop_id"

// TenantScope limits a query to the barbershop in ctx. Without one the query
// matches no rows, so a missing scope can never leak another shop's data.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		barbershopID, ok := GetBarbershopID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("barbershop_id = ?", barbershopID)
	}
}

func WithBarbershop(ctx context.Context, barbershopID uuid.UUID) context.Context {
	return context.WithValue(ctx, BarbershopIDKey, barbershopID)
}

func GetBarbershopID(ctx context.Context) (uuid.UUID, bool) {
	barbershopID, ok := ctx.Value(BarbershopIDKey).(uuid.UUID)
	return barbershopID, ok && barbershopID != uuid.Nil
}
