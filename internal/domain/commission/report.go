package commission

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/pkg/money"
	"github.com/shopspring/decimal"
)

// FilterConfig selects the bookings that enter a report.
// DateStart and DateEnd are inclusive and compared without truncating time of day.
// A nil ProfessionalID means all professionals.
type FilterConfig struct {
	DateStart      time.Time
	DateEnd        time.Time
	ProfessionalID *uuid.UUID
}

// Aggregate is the commission summary of one professional over the filter window
type Aggregate struct {
	Professional     entity.ProfessionalSummary `json:"professional"`
	GrossAmount      float64                    `json:"grossAmount"`
	CommissionRate   float64                    `json:"commissionRate"`
	CommissionAmount float64                    `json:"commissionAmount"`
	NetAmount        float64                    `json:"netAmount"`
	BookingsCount    int                        `json:"bookingsCount"`
}

// Totals sums every aggregate of a report
type Totals struct {
	BookingsCount    int     `json:"bookingsCount"`
	GrossAmount      float64 `json:"grossAmount"`
	CommissionAmount float64 `json:"commissionAmount"`
	NetAmount        float64 `json:"netAmount"`
}

// Report is the result of BuildReport
type Report struct {
	Items  []Aggregate `json:"items"`
	Totals Totals      `json:"totals"`
}

type accumulator struct {
	professional *entity.Professional
	rate         float64
	gross        decimal.Decimal
	commission   decimal.Decimal
	count        int
}

// Includes reports whether a booking passes the filter
func (f FilterConfig) Includes(b *entity.Booking) bool {
	if b.Status != enum.BookingStatusCompleted {
		return false
	}
	if b.BookingDate.Before(f.DateStart) || b.BookingDate.After(f.DateEnd) {
		return false
	}
	if f.ProfessionalID != nil && b.ProfessionalID != *f.ProfessionalID {
		return false
	}
	return true
}

// BuildReport groups the completed bookings of the window by professional.
// Bookings whose professional is missing from professionals are skipped.
// Items are ordered by gross amount, highest first; ties keep the order in which
// professionals were first seen in bookings.
func BuildReport(bookings []entity.Booking, professionals []entity.Professional, rates []entity.CommissionRate, filter FilterConfig) Report {
	byID := make(map[uuid.UUID]*entity.Professional, len(professionals))
	for i := range professionals {
		byID[professionals[i].ID] = &professionals[i]
	}

	accs := make(map[uuid.UUID]*accumulator)
	order := make([]uuid.UUID, 0)

	for i := range bookings {
		b := &bookings[i]
		if !filter.Includes(b) {
			continue
		}
		prof, ok := byID[b.ProfessionalID]
		if !ok {
			continue
		}

		acc, seen := accs[prof.ID]
		if !seen {
			acc = &accumulator{
				professional: prof,
				rate:         ResolveRate(prof.ID, rates),
				gross:        decimal.Zero,
				commission:   decimal.Zero,
			}
			accs[prof.ID] = acc
			order = append(order, prof.ID)
		}

		amount := b.Amount()
		acc.gross = acc.gross.Add(amount)
		acc.commission = acc.commission.Add(money.Percent(amount, acc.rate))
		acc.count++
	}

	report := Report{Items: make([]Aggregate, 0, len(order))}
	totalGross := decimal.Zero
	totalCommission := decimal.Zero

	for _, id := range order {
		acc := accs[id]
		gross := acc.gross.Round(2)
		commission := acc.commission.Round(2)
		net := gross.Sub(commission)

		report.Items = append(report.Items, Aggregate{
			Professional:     acc.professional.Summary(),
			GrossAmount:      money.Float(gross),
			CommissionRate:   acc.rate,
			CommissionAmount: money.Float(commission),
			NetAmount:        money.Float(net),
			BookingsCount:    acc.count,
		})

		totalGross = totalGross.Add(gross)
		totalCommission = totalCommission.Add(commission)
		report.Totals.BookingsCount += acc.count
	}

	sort.SliceStable(report.Items, func(i, j int) bool {
		return report.Items[i].GrossAmount > report.Items[j].GrossAmount
	})

	report.Totals.GrossAmount = money.Float(totalGross)
	report.Totals.CommissionAmount = money.Float(totalCommission)
	report.Totals.NetAmount = money.Float(totalGross.Sub(totalCommission))

	return report
}
