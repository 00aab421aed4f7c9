package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/barbershop-api/internal/domain/entity"
	"github.com/sangkips/barbershop-api/internal/domain/enum"
	"github.com/sangkips/barbershop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/barbershop-api/internal/infrastructure/repository"
	"github.com/sangkips/barbershop-api/pkg/pagination"
)

var errStorage = errors.New("storage unavailable")

// inTenant reports whether a row of barbershopID is visible from ctx
func inTenant(ctx context.Context, barbershopID uuid.UUID) bool {
	id, ok := infraRepo.GetBarbershopID(ctx)
	return ok && id == barbershopID
}

func page[T any](items []T, params *pagination.PaginationParams) []T {
	params.Validate()
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeBarbershopRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Barbershop
}

func newFakeBarbershopRepo(items ...*entity.Barbershop) *fakeBarbershopRepo {
	r := &fakeBarbershopRepo{items: make(map[uuid.UUID]*entity.Barbershop)}
	for _, b := range items {
		r.items[b.ID] = b
	}
	return r
}

func (r *fakeBarbershopRepo) Create(_ context.Context, b *entity.Barbershop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	r.items[b.ID] = b
	return nil
}

func (r *fakeBarbershopRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Barbershop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.items[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBarbershopRepo) GetBySlug(_ context.Context, slug string) (*entity.Barbershop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.items {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBarbershopRepo) Update(_ context.Context, b *entity.Barbershop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBarbershopRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	b, err := r.GetBySlug(ctx, slug)
	return b != nil, err
}

func (r *fakeBarbershopRepo) ListAll(_ context.Context, params *pagination.PaginationParams, search string) ([]entity.Barbershop, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Barbershop
	for _, b := range r.items {
		if search == "" || strings.Contains(b.Name, search) || strings.Contains(b.Slug, search) {
			out = append(out, *b)
		}
	}
	return page(out, params), int64(len(out)), nil
}

func (r *fakeBarbershopRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

type fakeBarbershopCache struct {
	items       map[string]*entity.Barbershop
	gets        int
	invalidated []string
	getErr      error
}

func newFakeBarbershopCache() *fakeBarbershopCache {
	return &fakeBarbershopCache{items: make(map[string]*entity.Barbershop)}
}

func (c *fakeBarbershopCache) Get(_ context.Context, slug string) (*entity.Barbershop, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.items[slug], nil
}

func (c *fakeBarbershopCache) Set(_ context.Context, b *entity.Barbershop) error {
	c.items[b.Slug] = b
	return nil
}

func (c *fakeBarbershopCache) Invalidate(_ context.Context, slug string) error {
	delete(c.items, slug)
	c.invalidated = append(c.invalidated, slug)
	return nil
}

type fakeProfessionalRepo struct {
	items []*entity.Professional
}

func (r *fakeProfessionalRepo) Create(_ context.Context, p *entity.Professional) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.items = append(r.items, p)
	return nil
}

func (r *fakeProfessionalRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Professional, error) {
	for _, p := range r.items {
		if p.ID == id && inTenant(ctx, p.BarbershopID) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProfessionalRepo) Update(_ context.Context, p *entity.Professional) error {
	for i, existing := range r.items {
		if existing.ID == p.ID {
			cp := *p
			r.items[i] = &cp
		}
	}
	return nil
}

func (r *fakeProfessionalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.items[:0]
	for _, p := range r.items {
		if !(p.ID == id && inTenant(ctx, p.BarbershopID)) {
			kept = append(kept, p)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeProfessionalRepo) List(ctx context.Context, params *pagination.PaginationParams, filter repository.ProfessionalFilter) ([]entity.Professional, int64, error) {
	var out []entity.Professional
	for _, p := range r.items {
		if !inTenant(ctx, p.BarbershopID) {
			continue
		}
		if filter.Active != nil && p.IsActive != *filter.Active {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	return page(out, params), int64(len(out)), nil
}

func (r *fakeProfessionalRepo) ListAll(ctx context.Context) ([]entity.Professional, error) {
	var out []entity.Professional
	for _, p := range r.items {
		if inTenant(ctx, p.BarbershopID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	items []*entity.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, s *entity.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.items = append(r.items, s)
	return nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	for _, s := range r.items {
		if s.ID == id && inTenant(ctx, s.BarbershopID) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *entity.Service) error {
	for i, existing := range r.items {
		if existing.ID == s.ID {
			cp := *s
			r.items[i] = &cp
		}
	}
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.items[:0]
	for _, s := range r.items {
		if !(s.ID == id && inTenant(ctx, s.BarbershopID)) {
			kept = append(kept, s)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeServiceRepo) List(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Service, int64, error) {
	var out []entity.Service
	for _, s := range r.items {
		if !inTenant(ctx, s.BarbershopID) || (activeOnly && !s.IsActive) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, *s)
	}
	return page(out, params), int64(len(out)), nil
}

type fakeBookingRepo struct {
	items   []*entity.Booking
	listErr error
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	cp := *b
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	for _, b := range r.items {
		if b.ID == id && inTenant(ctx, b.BarbershopID) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	for i, existing := range r.items {
		if existing.ID == b.ID {
			cp := *b
			r.items[i] = &cp
		}
	}
	return nil
}

func (r *fakeBookingRepo) matching(ctx context.Context, filter repository.BookingFilter) []entity.Booking {
	var out []entity.Booking
	for _, b := range r.items {
		if !inTenant(ctx, b.BarbershopID) {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.ProfessionalID != nil && b.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		out = append(out, *b)
	}
	return out
}

func (r *fakeBookingRepo) List(ctx context.Context, params *pagination.PaginationParams, filter repository.BookingFilter) ([]entity.Booking, int64, error) {
	out := r.matching(ctx, filter)
	return page(out, params), int64(len(out)), nil
}

// ListWithCursor follows the keyset order of the gorm repository: (created_at, id)
// ascending, or descending before the cursor for the prev direction
func (r *fakeBookingRepo) ListWithCursor(ctx context.Context, params *pagination.CursorParams, filter repository.BookingFilter) ([]entity.Booking, error) {
	params.Validate()
	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	all := r.matching(ctx, filter)
	sort.SliceStable(all, func(i, j int) bool {
		return keyBefore(all[i].CreatedAt, all[i].ID.String(), all[j].CreatedAt, all[j].ID.String())
	})

	prev := params.Direction == pagination.CursorDirectionPrev
	var out []entity.Booking
	for _, b := range all {
		if cursor != nil {
			before := keyBefore(b.CreatedAt, b.ID.String(), cursor.CreatedAt, cursor.ID)
			after := keyBefore(cursor.CreatedAt, cursor.ID, b.CreatedAt, b.ID.String())
			if (prev && !before) || (!prev && !after) {
				continue
			}
		}
		out = append(out, b)
	}
	if prev {
		slices.Reverse(out)
	}

	if len(out) > params.Limit+1 {
		out = out[:params.Limit+1]
	}
	return out, nil
}

func keyBefore(at time.Time, id string, otherAt time.Time, otherID string) bool {
	if !at.Equal(otherAt) {
		return at.Before(otherAt)
	}
	return id < otherID
}

func (r *fakeBookingRepo) ListCompletedInRange(ctx context.Context, from, to time.Time, professionalID *uuid.UUID) ([]entity.Booking, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []entity.Booking
	for _, b := range r.matching(ctx, repository.BookingFilter{Status: enum.BookingStatusCompleted, ProfessionalID: professionalID}) {
		if !b.BookingDate.Before(from) && !b.BookingDate.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRateRepo struct {
	rates      []*entity.CommissionRate
	history    []entity.CommissionRateHistory
	upsertErr  error
	historyErr error
}

func (r *fakeRateRepo) ListByBarbershop(ctx context.Context) ([]entity.CommissionRate, error) {
	var out []entity.CommissionRate
	for _, rate := range r.rates {
		if inTenant(ctx, rate.BarbershopID) {
			out = append(out, *rate)
		}
	}
	return out, nil
}

func (r *fakeRateRepo) GetByProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.CommissionRate, error) {
	for _, rate := range r.rates {
		if rate.ProfessionalID == professionalID && inTenant(ctx, rate.BarbershopID) {
			cp := *rate
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRateRepo) Upsert(_ context.Context, rate *entity.CommissionRate) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for i, existing := range r.rates {
		if existing.BarbershopID == rate.BarbershopID && existing.ProfessionalID == rate.ProfessionalID {
			cp := *rate
			r.rates[i] = &cp
			return nil
		}
	}
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	rate.UpdatedAt = time.Now()
	cp := *rate
	r.rates = append(r.rates, &cp)
	return nil
}

func (r *fakeRateRepo) CreateHistory(_ context.Context, h *entity.CommissionRateHistory) error {
	if r.historyErr != nil {
		return r.historyErr
	}
	r.history = append(r.history, *h)
	return nil
}

func (r *fakeRateRepo) ListHistory(ctx context.Context, professionalID uuid.UUID) ([]entity.CommissionRateHistory, error) {
	var out []entity.CommissionRateHistory
	for i := len(r.history) - 1; i >= 0; i-- {
		h := r.history[i]
		if h.ProfessionalID == professionalID && inTenant(ctx, h.BarbershopID) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	items     []*entity.CommissionPayment
	createErr error
}

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.CommissionPayment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error) {
	for _, p := range r.items {
		if p.ID == id && inTenant(ctx, p.BarbershopID) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *entity.CommissionPayment) error {
	for i, existing := range r.items {
		if existing.ID == p.ID {
			cp := *p
			r.items[i] = &cp
		}
	}
	return nil
}

func (r *fakePaymentRepo) List(ctx context.Context, params *pagination.PaginationParams, filter repository.PaymentFilter) ([]entity.CommissionPayment, int64, error) {
	var out []entity.CommissionPayment
	for _, p := range r.items {
		if !inTenant(ctx, p.BarbershopID) {
			continue
		}
		if filter.ProfessionalID != nil && p.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return page(out, params), int64(len(out)), nil
}

type fakeAnalyticsRepo struct {
	byStatus []repository.StatusCountResult
	payouts  []repository.PayoutSumResult
	daily    []repository.DailyRevenueResult
	services []repository.TopServiceResult
}

func (r *fakeAnalyticsRepo) GetBookingsByStatus(context.Context, time.Time, time.Time) ([]repository.StatusCountResult, error) {
	return r.byStatus, nil
}

func (r *fakeAnalyticsRepo) GetPayoutTotals(context.Context) ([]repository.PayoutSumResult, error) {
	return r.payouts, nil
}

func (r *fakeAnalyticsRepo) GetTopServices(context.Context, time.Time, time.Time, int) ([]repository.TopServiceResult, error) {
	return r.services, nil
}

func (r *fakeAnalyticsRepo) GetDailyRevenue(context.Context, time.Time, time.Time) ([]repository.DailyRevenueResult, error) {
	return r.daily, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func cents(v int64) *int64 {
	return &v
}

func shopContext(barbershopID uuid.UUID) context.Context {
	return infraRepo.WithBarbershop(context.Background(), barbershopID)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
