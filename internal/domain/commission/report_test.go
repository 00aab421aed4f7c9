package commission

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func cents(v int64) *int64 {
	return &v
}

func booking(profID uuid.UUID, status enum.BookingStatus, date string, priceCents int64) entity.Booking {
	return entity.Booking{
		ID:             uuid.New(),
		ProfessionalID: profID,
		Status:         status,
		BookingDate:    day(date),
		Price:          cents(priceCents),
	}
}

func january() FilterConfig {
	return FilterConfig{DateStart: day("2024-01-01"), DateEnd: day("2024-01-31")}
}

func TestResolveRate(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	rates := []entity.CommissionRate{{ProfessionalID: a, CommissionRate: 40}}

	assert.Equal(t, 40.0, ResolveRate(a, rates))
	assert.Equal(t, DefaultRate, ResolveRate(b, rates))
	assert.Equal(t, DefaultRate, ResolveRate(a, nil))
}

func TestResolveRateTrustsStoredValues(t *testing.T) {
	a := uuid.New()
	rates := []entity.CommissionRate{
		{ProfessionalID: a, CommissionRate: 150},
		{ProfessionalID: a, CommissionRate: 10},
	}
	assert.Equal(t, 150.0, ResolveRate(a, rates))
}

func TestValidateRate(t *testing.T) {
	for _, ok := range []float64{0, 0.5, 50, 100} {
		assert.NoError(t, ValidateRate(ok), ok)
	}
	for _, bad := range []float64{-0.01, 100.01, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, ValidateRate(bad), ErrRateOutOfRange, bad)
	}
}

func TestRoundRate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{33.333, 33.33},
		{12.345, 12.35},
		{99.999, 100},
		{40, 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundRate(tt.in), tt.in)
	}
}

func TestBuildReportWorkedExample(t *testing.T) {
	profA := entity.Professional{ID: uuid.New(), Name: "A"}
	profB := entity.Professional{ID: uuid.New(), Name: "B"}
	rates := []entity.CommissionRate{{ProfessionalID: profA.ID, CommissionRate: 40}}

	bookings := []entity.Booking{
		booking(profA.ID, enum.BookingStatusCompleted, "2024-01-05", 10000),
		booking(profA.ID, enum.BookingStatusCompleted, "2024-01-10", 5000),
		booking(profB.ID, enum.BookingStatusCompleted, "2024-01-07", 8000),
		booking(profA.ID, enum.BookingStatusCancelled, "2024-01-08", 99900),
		booking(profB.ID, enum.BookingStatusCompleted, "2023-12-31", 8000),
	}

	report := BuildReport(bookings, []entity.Professional{profA, profB}, rates, january())

	require.Len(t, report.Items, 2)

	a := report.Items[0]
	assert.Equal(t, profA.ID, a.Professional.ID)
	assert.Equal(t, 150.0, a.GrossAmount)
	assert.Equal(t, 40.0, a.CommissionRate)
	assert.Equal(t, 60.0, a.CommissionAmount)
	assert.Equal(t, 90.0, a.NetAmount)
	assert.Equal(t, 2, a.BookingsCount)

	b := report.Items[1]
	assert.Equal(t, profB.ID, b.Professional.ID)
	assert.Equal(t, 80.0, b.GrossAmount)
	assert.Equal(t, DefaultRate, b.CommissionRate)
	assert.Equal(t, 40.0, b.CommissionAmount)
	assert.Equal(t, 40.0, b.NetAmount)
	assert.Equal(t, 1, b.BookingsCount)

	assert.Equal(t, Totals{BookingsCount: 3, GrossAmount: 230, CommissionAmount: 100, NetAmount: 130}, report.Totals)
}

func TestBuildReportOnlyCompletedAndInclusiveBounds(t *testing.T) {
	prof := entity.Professional{ID: uuid.New(), Name: "A"}
	bookings := []entity.Booking{
		booking(prof.ID, enum.BookingStatusCompleted, "2024-01-01", 1000),
		booking(prof.ID, enum.BookingStatusCompleted, "2024-01-31", 2000),
		booking(prof.ID, enum.BookingStatusPending, "2024-01-15", 4000),
		booking(prof.ID, enum.BookingStatusCancelled, "2024-01-15", 8000),
		booking(prof.ID, enum.BookingStatusConfirmed, "2024-01-15", 16000),
		booking(prof.ID, enum.BookingStatusCompleted, "2024-02-01", 32000),
	}

	report := BuildReport(bookings, []entity.Professional{prof}, nil, january())

	require.Len(t, report.Items, 1)
	assert.Equal(t, 30.0, report.Items[0].GrossAmount)
	assert.Equal(t, 2, report.Items[0].BookingsCount)
}

func TestBuildReportEndBoundIsNotTruncated(t *testing.T) {
	prof := entity.Professional{ID: uuid.New(), Name: "A"}
	late := booking(prof.ID, enum.BookingStatusCompleted, "2024-01-31", 1000)
	late.BookingDate = late.BookingDate.Add(18 * time.Hour)

	filter := FilterConfig{DateStart: day("2024-01-01"), DateEnd: day("2024-01-31").Add(12 * time.Hour)}
	report := BuildReport([]entity.Booking{late}, []entity.Professional{prof}, nil, filter)

	assert.Empty(t, report.Items)
}

func TestBuildReportProfessionalFilter(t *testing.T) {
	profA := entity.Professional{ID: uuid.New(), Name: "A"}
	profB := entity.Professional{ID: uuid.New(), Name: "B"}
	bookings := []entity.Booking{
		booking(profA.ID, enum.BookingStatusCompleted, "2024-01-05", 1000),
		booking(profB.ID, enum.BookingStatusCompleted, "2024-01-05", 2000),
	}
	filter := january()
	filter.ProfessionalID = &profB.ID

	report := BuildReport(bookings, []entity.Professional{profA, profB}, nil, filter)

	require.Len(t, report.Items, 1)
	assert.Equal(t, profB.ID, report.Items[0].Professional.ID)
}

func TestBuildReportSkipsUnknownProfessional(t *testing.T) {
	prof := entity.Professional{ID: uuid.New(), Name: "A"}
	bookings := []entity.Booking{
		booking(uuid.New(), enum.BookingStatusCompleted, "2024-01-05", 5000),
		booking(prof.ID, enum.BookingStatusCompleted, "2024-01-05", 1000),
	}

	report := BuildReport(bookings, []entity.Professional{prof}, nil, january())

	require.Len(t, report.Items, 1)
	assert.Equal(t, 10.0, report.Totals.GrossAmount)
	assert.Equal(t, 1, report.Totals.BookingsCount)
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, nil, nil, january())

	assert.NotNil(t, report.Items)
	assert.Empty(t, report.Items)
	assert.Equal(t, Totals{}, report.Totals)
}

func TestBuildReportAmountPrefersTotalPrice(t *testing.T) {
	prof := entity.Professional{ID: uuid.New(), Name: "A"}

	withTotal := booking(prof.ID, enum.BookingStatusCompleted, "2024-01-05", 1000)
	withTotal.TotalPrice = cents(2500)
	noPrice := booking(prof.ID, enum.BookingStatusCompleted, "2024-01-06", 0)
	noPrice.Price = nil

	report := BuildReport([]entity.Booking{withTotal, noPrice}, []entity.Professional{prof}, nil, january())

	require.Len(t, report.Items, 1)
	assert.Equal(t, 25.0, report.Items[0].GrossAmount)
	assert.Equal(t, 2, report.Items[0].BookingsCount)
}

func TestBuildReportStableSortOnTies(t *testing.T) {
	profs := []entity.Professional{
		{ID: uuid.New(), Name: "first"},
		{ID: uuid.New(), Name: "second"},
		{ID: uuid.New(), Name: "top"},
	}
	bookings := []entity.Booking{
		booking(profs[0].ID, enum.BookingStatusCompleted, "2024-01-02", 5000),
		booking(profs[1].ID, enum.BookingStatusCompleted, "2024-01-03", 5000),
		booking(profs[2].ID, enum.BookingStatusCompleted, "2024-01-04", 9000),
	}

	report := BuildReport(bookings, profs, nil, january())

	require.Len(t, report.Items, 3)
	assert.Equal(t, "top", report.Items[0].Professional.Name)
	assert.Equal(t, "first", report.Items[1].Professional.Name)
	assert.Equal(t, "second", report.Items[2].Professional.Name)
}

func TestBuildReportIdentities(t *testing.T) {
	profs := []entity.Professional{{ID: uuid.New(), Name: "A"}, {ID: uuid.New(), Name: "B"}}
	rates := []entity.CommissionRate{
		{ProfessionalID: profs[0].ID, CommissionRate: 33.3},
		{ProfessionalID: profs[1].ID, CommissionRate: 12.5},
	}
	bookings := []entity.Booking{
		booking(profs[0].ID, enum.BookingStatusCompleted, "2024-01-02", 1999),
		booking(profs[0].ID, enum.BookingStatusCompleted, "2024-01-03", 4550),
		booking(profs[1].ID, enum.BookingStatusCompleted, "2024-01-04", 3333),
		booking(profs[1].ID, enum.BookingStatusCompleted, "2024-01-05", 101),
	}

	report := BuildReport(bookings, profs, rates, january())

	for _, item := range report.Items {
		expected := item.GrossAmount * item.CommissionRate / 100
		assert.InDelta(t, expected, item.CommissionAmount, 0.005)
		assert.InDelta(t, item.GrossAmount-item.CommissionAmount, item.NetAmount, 1e-9)
	}
	assert.InDelta(t, report.Totals.GrossAmount-report.Totals.CommissionAmount, report.Totals.NetAmount, 1e-9)
}

func TestBuildReportIsIdempotent(t *testing.T) {
	prof := entity.Professional{ID: uuid.New(), Name: "A"}
	bookings := []entity.Booking{
		booking(prof.ID, enum.BookingStatusCompleted, "2024-01-02", 1234),
		booking(prof.ID, enum.BookingStatusCompleted, "2024-01-09", 4321),
	}
	profs := []entity.Professional{prof}

	first := BuildReport(bookings, profs, nil, january())
	second := BuildReport(bookings, profs, nil, january())

	assert.Equal(t, first, second)
}

func TestPayoutCommission(t *testing.T) {
	assert.Equal(t, int64(6000), PayoutCommission(20000, 30))
	assert.Equal(t, int64(0), PayoutCommission(20000, 0))
	assert.Equal(t, int64(20000), PayoutCommission(20000, 100))
	assert.Equal(t, int64(666), PayoutCommission(1999, 33.3))
}
