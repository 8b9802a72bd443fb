package repository

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Shop / Barber / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetShop(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err, "shop_not_found", "get shop")
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := withSchedule(r.db.WithContext(ctx)).First(&barber, id).Error; err != nil {
		return nil, notFound(err, "barber_not_found", "get barber")
	}
	return &barber, nil
}

func (r *BookingGormRepository) ListAvailableBarbers(
	ctx context.Context,
	shopID uint,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := withSchedule(r.db.WithContext(ctx)).
		Where("shop_id = ? AND is_available = ?", shopID, true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, cr.Wrap(err, "list barbers")
	}
	return barbers, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	shopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ? AND active = ?", serviceID, shopID, true).
		First(&service).Error; err != nil {
		return nil, notFound(err, "service_not_found", "get service")
	}
	return &service, nil
}

// --------------------------------------------------
// Booking (create / state change)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return cr.Wrap(r.db.WithContext(ctx).Create(b).Error, "create booking")
}

// WithBarberLock takes SELECT ... FOR UPDATE on the barber row. Row locks on
// existing bookings would not stop a concurrent insert, the barber row does.
func (r *BookingGormRepository) WithBarberLock(
	ctx context.Context,
	barberID uint,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&barber, barberID).Error; err != nil {
			return notFound(err, "barber_not_found", "lock barber")
		}
		return fn(&BookingGormRepository{db: tx})
	})
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "booking_not_found", "get booking")
	}
	return &b, nil
}

// UpdateBooking persists status and notes only; financial and settlement
// columns are owned by creation and the settlement run.
func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	err := r.db.WithContext(ctx).
		Model(b).
		Select("status", "notes").
		Updates(b).Error
	return cr.Wrap(err, "update booking")
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListShopBookings(
	ctx context.Context,
	shopID uint,
	from string,
	to string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Where("shop_id = ? AND status <> ?", shopID, domain.StatusCancelled)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var bookings []models.Booking
	if err := q.Order("date ASC, start_time ASC").Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "list shop bookings")
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListUserBookings(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "list user bookings")
	}
	return bookings, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveForBarbers(
	ctx context.Context,
	barberIDs []uint,
	dates []string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if len(barberIDs) == 0 || len(dates) == 0 {
		return bookings, nil
	}

	if err := r.db.WithContext(ctx).
		Select("id", "barber_id", "date", "start_time", "end_time", "status").
		Where("barber_id IN ? AND date IN ? AND status <> ?", barberIDs, dates, domain.StatusCancelled).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "list active bookings")
	}
	return bookings, nil
}

func (r *BookingGormRepository) CountCashBookings(
	ctx context.Context,
	userID uint,
	fromDate string,
	toDate string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND status <> ?", userID, domain.StatusCancelled).
		Where("LOWER(payment_method) = ?", "cash").
		Where("date >= ? AND date <= ?", fromDate, toDate).
		Count(&count).Error; err != nil {
		return 0, cr.Wrap(err, "count cash bookings")
	}
	return count, nil
}

// --------------------------------------------------
// Missed sweep
// --------------------------------------------------

func (r *BookingGormRepository) ListSweepCandidates(
	ctx context.Context,
	today string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND date <= ?", domain.SweepableStatuses, today).
		Order("date ASC, end_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "list sweep candidates")
	}
	return bookings, nil
}

func (r *BookingGormRepository) MarkMissed(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status IN ?", id, domain.SweepableStatuses).
		Update("status", domain.StatusMissed)
	if res.Error != nil {
		return false, cr.Wrap(res.Error, "mark missed")
	}
	return res.RowsAffected == 1, nil
}

func withSchedule(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Breaks").
		Preload("WeeklySchedule.Breaks").
		Preload("SpecialHours")
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
