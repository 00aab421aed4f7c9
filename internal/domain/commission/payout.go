package commission

import (
	"github.com/sangkips/barbershop-api/pkg/money"
)

// PayoutCommission computes the stored commission amount of a ledger entry, in cents
func PayoutCommission(grossCents int64, rate float64) int64 {
	return money.ToCents(money.Percent(money.FromCents(grossCents), rate))
}
