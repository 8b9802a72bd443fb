package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Wednesday 2024-06-05, 10:00 business time.
var atTen = timezone.FixedClock(time.Date(2024, 6, 5, 10, 0, 0, 0, timezone.Business))

var defaults = config.BusinessConfig{
	YearlyCancellationLimit: 12,
	CommissionRate:          decimal.NewFromInt(10),
	DiscountRate:            decimal.Zero,
	MaxCashBookingsPerMonth: 5,
}

// ======================================================
// Repository mocks
// ======================================================

type repoMock struct {
	mock.Mock

	// locked records the barber of every WithBarberLock call.
	locked []uint
}

var _ domain.Repository = (*repoMock)(nil)

func (m *repoMock) GetShop(ctx context.Context, id uint) (*models.Shop, error) {
	args := m.Called(ctx, id)
	shop, _ := args.Get(0).(*models.Shop)
	return shop, args.Error(1)
}

func (m *repoMock) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Barber)
	return b, args.Error(1)
}

func (m *repoMock) ListAvailableBarbers(ctx context.Context, shopID uint) ([]models.Barber, error) {
	args := m.Called(ctx, shopID)
	bs, _ := args.Get(0).([]models.Barber)
	return bs, args.Error(1)
}

func (m *repoMock) GetService(ctx context.Context, shopID, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, shopID, serviceID)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *repoMock) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *repoMock) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *repoMock) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *repoMock) ListShopBookings(ctx context.Context, shopID uint, from, to string) ([]models.Booking, error) {
	args := m.Called(ctx, shopID, from, to)
	bs, _ := args.Get(0).([]models.Booking)
	return bs, args.Error(1)
}

func (m *repoMock) ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	bs, _ := args.Get(0).([]models.Booking)
	return bs, args.Error(1)
}

func (m *repoMock) ListActiveForBarbers(ctx context.Context, barberIDs []uint, dates []string) ([]models.Booking, error) {
	args := m.Called(ctx, barberIDs, dates)
	bs, _ := args.Get(0).([]models.Booking)
	return bs, args.Error(1)
}

func (m *repoMock) CountCashBookings(ctx context.Context, userID uint, from, to string) (int64, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// WithBarberLock runs fn against the mock itself; the lock is only recorded.
func (m *repoMock) WithBarberLock(_ context.Context, barberID uint, fn func(tx domain.Repository) error) error {
	m.locked = append(m.locked, barberID)
	return fn(m)
}

func (m *repoMock) ListSweepCandidates(ctx context.Context, today string) ([]models.Booking, error) {
	args := m.Called(ctx, today)
	bs, _ := args.Get(0).([]models.Booking)
	return bs, args.Error(1)
}

func (m *repoMock) MarkMissed(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type usersMock struct {
	mock.Mock
}

var _ domain.UserRepository = (*usersMock)(nil)

func (m *usersMock) IncrementNoShow(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *usersMock) IncrementCancellation(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *usersMock) Flag(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// staticConfig serves one SystemConfig row, or err when set.
type staticConfig struct {
	cfg *models.SystemConfig
	err error
}

func (s staticConfig) GetGlobal(context.Context) (*models.SystemConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

type recorder struct {
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) { r.events = append(r.events, ev) }

func (r *recorder) actions() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

// ======================================================
// Fixtures
// ======================================================

func globalConfig(limit int) staticConfig {
	return staticConfig{cfg: &models.SystemConfig{
		Key:                     models.SystemConfigGlobalKey,
		AdminCommissionRate:     decimal.NewFromInt(10),
		UserDiscountRate:        decimal.NewFromInt(5),
		MaxCashBookingsPerMonth: 5,
		YearlyCancellationLimit: limit,
	}}
}

func barber(id, shopID uint, start, end string) models.Barber {
	return models.Barber{
		ID:          id,
		ShopID:      shopID,
		StartHour:   start,
		EndHour:     end,
		IsAvailable: true,
	}
}

func uintPtr(v uint) *uint { return &v }
