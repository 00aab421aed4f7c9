package service

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/commission"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type commissionFixture struct {
	svc      *CommissionService
	rates    *fakeRateRepo
	bookings *fakeBookingRepo
	shopID   uuid.UUID
	profA    *entity.Professional
	profB    *entity.Professional
}

func newCommissionFixture(t *testing.T) *commissionFixture {
	t.Helper()
	shopID := uuid.New()
	profA := &entity.Professional{ID: uuid.New(), BarbershopID: shopID, Name: "A", IsActive: true}
	profB := &entity.Professional{ID: uuid.New(), BarbershopID: shopID, Name: "B", IsActive: true}

	rates := &fakeRateRepo{}
	bookings := &fakeBookingRepo{}
	svc := NewCommissionService(rates, &fakeProfessionalRepo{items: []*entity.Professional{profA, profB}}, bookings)

	return &commissionFixture{svc: svc, rates: rates, bookings: bookings, shopID: shopID, profA: profA, profB: profB}
}

func (f *commissionFixture) addBooking(profID uuid.UUID, status enum.BookingStatus, day string, priceCents int64) {
	f.bookings.items = append(f.bookings.items, &entity.Booking{
		ID:             uuid.New(),
		BarbershopID:   f.shopID,
		ProfessionalID: profID,
		Status:         status,
		BookingDate:    date(day),
		Price:          cents(priceCents),
	})
}

func TestSetRateCreatesAndRecordsHistory(t *testing.T) {
	f := newCommissionFixture(t)
	changedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = fixedClock(changedAt)
	ctx := shopContext(f.shopID)
	userID := uuid.New()

	rate, err := f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 40, ChangedBy: &userID})
	require.NoError(t, err)
	assert.Equal(t, 40.0, rate.CommissionRate)

	_, err = f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 45})
	require.NoError(t, err)

	require.Len(t, f.rates.rates, 1)
	assert.Equal(t, 45.0, f.rates.rates[0].CommissionRate)

	history, err := f.svc.ListRateHistory(ctx, f.profA.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 45.0, history[0].NewRate)
	require.NotNil(t, history[0].OldRate)
	assert.Equal(t, 40.0, *history[0].OldRate)
	assert.Nil(t, history[1].OldRate)
	assert.Equal(t, &userID, history[1].ChangedBy)
	assert.Equal(t, changedAt, history[1].ChangedAt)
}

func TestSetRateUnchangedWritesNoHistory(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := shopContext(f.shopID)

	_, err := f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 40})
	require.NoError(t, err)
	_, err = f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 40})
	require.NoError(t, err)

	assert.Len(t, f.rates.history, 1)
}

func TestSetRateRoundsToStoredPrecision(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := shopContext(f.shopID)

	rate, err := f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 33.333})
	require.NoError(t, err)
	assert.Equal(t, 33.33, rate.CommissionRate)

	// a retry of the same input matches the stored value
	_, err = f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 33.333})
	require.NoError(t, err)

	require.Len(t, f.rates.history, 1)
	assert.Equal(t, 33.33, f.rates.history[0].NewRate)
}

func TestSetRateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"negative", -1},
		{"above hundred", 100.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCommissionFixture(t)

			_, err := f.svc.SetRate(shopContext(f.shopID), &SetRateInput{ProfessionalID: f.profA.ID, Rate: tt.rate})
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
			require.Len(t, appErr.Errors, 1)
			assert.Equal(t, "commission_rate", appErr.Errors[0].Field)
			assert.Empty(t, f.rates.rates)
			assert.Empty(t, f.rates.history)
		})
	}
}

func TestSetRateKeepsRateWhenHistoryFails(t *testing.T) {
	f := newCommissionFixture(t)
	f.rates.historyErr = errStorage

	rate, err := f.svc.SetRate(shopContext(f.shopID), &SetRateInput{ProfessionalID: f.profA.ID, Rate: 35})
	require.NoError(t, err)
	assert.Equal(t, 35.0, rate.CommissionRate)
	assert.Len(t, f.rates.rates, 1)
}

func TestSetRateUpsertFailure(t *testing.T) {
	f := newCommissionFixture(t)
	f.rates.upsertErr = errStorage

	_, err := f.svc.SetRate(shopContext(f.shopID), &SetRateInput{ProfessionalID: f.profA.ID, Rate: 35})
	assert.ErrorIs(t, err, errStorage)
	assert.Empty(t, f.rates.history)
}

func TestListRatesMarksDefaults(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := shopContext(f.shopID)
	_, err := f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 40})
	require.NoError(t, err)

	rates, err := f.svc.ListRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)

	assert.Equal(t, f.profA.ID, rates[0].Professional.ID)
	assert.Equal(t, 40.0, rates[0].CommissionRate)
	assert.False(t, rates[0].IsDefault)

	assert.Equal(t, f.profB.ID, rates[1].Professional.ID)
	assert.Equal(t, commission.DefaultRate, rates[1].CommissionRate)
	assert.True(t, rates[1].IsDefault)
}

func TestGetReportWorkedExample(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := shopContext(f.shopID)
	_, err := f.svc.SetRate(ctx, &SetRateInput{ProfessionalID: f.profA.ID, Rate: 40})
	require.NoError(t, err)

	f.addBooking(f.profA.ID, enum.BookingStatusCompleted, "2024-01-05", 10000)
	f.addBooking(f.profA.ID, enum.BookingStatusCompleted, "2024-01-10", 5000)
	f.addBooking(f.profB.ID, enum.BookingStatusCompleted, "2024-01-07", 8000)
	f.addBooking(f.profB.ID, enum.BookingStatusPending, "2024-01-08", 8000)

	report, err := f.svc.GetReport(ctx, commission.FilterConfig{DateStart: date("2024-01-01"), DateEnd: date("2024-01-31")})
	require.NoError(t, err)

	assert.Equal(t, ReportFilter{DateStart: "2024-01-01", DateEnd: "2024-01-31", ProfessionalID: "all"}, report.Filter)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "A", report.Items[0].Professional.Name)
	assert.Equal(t, 60.0, report.Items[0].CommissionAmount)
	assert.Equal(t, "B", report.Items[1].Professional.Name)
	assert.Equal(t, 40.0, report.Items[1].CommissionAmount)
	assert.Equal(t, commission.Totals{BookingsCount: 3, GrossAmount: 230, CommissionAmount: 100, NetAmount: 130}, report.Totals)
}

func TestGetReportSingleProfessional(t *testing.T) {
	f := newCommissionFixture(t)
	f.addBooking(f.profA.ID, enum.BookingStatusCompleted, "2024-01-05", 10000)
	f.addBooking(f.profB.ID, enum.BookingStatusCompleted, "2024-01-07", 8000)

	report, err := f.svc.GetReport(shopContext(f.shopID), commission.FilterConfig{
		DateStart:      date("2024-01-01"),
		DateEnd:        date("2024-01-31"),
		ProfessionalID: &f.profB.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, f.profB.ID.String(), report.Filter.ProfessionalID)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 80.0, report.Items[0].GrossAmount)
}

func TestGetReportRejectsInvertedRange(t *testing.T) {
	f := newCommissionFixture(t)

	_, err := f.svc.GetReport(shopContext(f.shopID), commission.FilterConfig{DateStart: date("2024-02-01"), DateEnd: date("2024-01-01")})
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestGetReportPropagatesStorageErrors(t *testing.T) {
	f := newCommissionFixture(t)
	f.bookings.listErr = errStorage

	_, err := f.svc.GetReport(shopContext(f.shopID), commission.FilterConfig{DateStart: date("2024-01-01"), DateEnd: date("2024-01-31")})
	assert.ErrorIs(t, err, errStorage)
}

func TestGetReportEmpty(t *testing.T) {
	f := newCommissionFixture(t)

	report, err := f.svc.GetReport(shopContext(f.shopID), commission.FilterConfig{DateStart: date("2024-01-01"), DateEnd: date("2024-01-31")})
	require.NoError(t, err)
	assert.NotNil(t, report.Items)
	assert.Empty(t, report.Items)
	assert.Equal(t, commission.Totals{}, report.Totals)
}

func TestExportReport(t *testing.T) {
	f := newCommissionFixture(t)
	f.addBooking(f.profA.ID, enum.BookingStatusCompleted, "2024-01-05", 10000)

	data, err := f.svc.ExportReport(shopContext(f.shopID), "Classic Cut", commission.FilterConfig{DateStart: date("2024-01-01"), DateEnd: date("2024-01-31")})
	require.NoError(t, err)

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"A", "1", "100", "50", "50", "50"}, rows[3])
	assert.Equal(t, "Total", rows[4][0])
}
