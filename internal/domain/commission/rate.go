// Package commission holds the commission arithmetic of the finance dashboard:
// rate resolution, the per-professional report and payout amount calculation.
// Everything here is pure and works on rows already loaded from storage.
package commission

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultRate is applied to professionals without a configured rate
const DefaultRate = 50.0

const (
	MinRate = 0.0
	MaxRate = 100.0
)

// ErrRateOutOfRange is returned when a rate is not a number within [0, 100]
var ErrRateOutOfRange = errors.New("commission rate must be a number between 0 and 100")

// ResolveRate returns the rate of the first row matching professionalID, or DefaultRate.
// Stored values are trusted as-is; range checks only happen on writes.
func ResolveRate(professionalID uuid.UUID, rates []entity.CommissionRate) float64 {
	for _, r := range rates {
		if r.ProfessionalID == professionalID {
			return r.CommissionRate
		}
	}
	return DefaultRate
}

// ValidateRate checks a rate before it is written
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < MinRate || rate > MaxRate {
		return ErrRateOutOfRange
	}
	return nil
}

// RoundRate rounds a validated rate to the two decimals the rate columns hold,
// so computed amounts match the stored rate
func RoundRate(rate float64) float64 {
	r, _ := decimal.NewFromFloat(rate).Round(2).Float64()
	return r
}
