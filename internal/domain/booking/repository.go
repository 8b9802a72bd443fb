package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Shop / Barber / Service --------
	GetShop(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	ListAvailableBarbers(
		ctx context.Context,
		shopID uint,
	) ([]models.Barber, error)

	GetService(
		ctx context.Context,
		shopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking (create / state change) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listings --------
	// ListShopBookings returns non-cancelled bookings dated within [from, to],
	// ordered by date and start time. Empty bounds are open.
	ListShopBookings(
		ctx context.Context,
		shopID uint,
		from string,
		to string,
	) ([]models.Booking, error)

	ListUserBookings(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	// -------- Availability --------
	ListActiveForBarbers(
		ctx context.Context,
		barberIDs []uint,
		dates []string,
	) ([]models.Booking, error)

	CountCashBookings(
		ctx context.Context,
		userID uint,
		fromDate string,
		toDate string,
	) (int64, error)

	// -------- Transaction --------
	// WithBarberLock runs fn in one transaction holding a row lock on the
	// barber, so creations for the same barber check and insert one at a time.
	// fn must use tx, not the outer repository.
	WithBarberLock(
		ctx context.Context,
		barberID uint,
		fn func(tx Repository) error,
	) error

	// -------- Missed sweep --------
	ListSweepCandidates(
		ctx context.Context,
		today string,
	) ([]models.Booking, error)

	// MarkMissed moves the booking to missed only while it is still sweepable;
	// false means another writer got there first.
	MarkMissed(
		ctx context.Context,
		id uint,
	) (bool, error)
}

type UserRepository interface {
	// IncrementNoShow and IncrementCancellation are single atomic increments
	// returning the updated row.
	IncrementNoShow(ctx context.Context, id uint) (*models.User, error)
	IncrementCancellation(ctx context.Context, id uint) (*models.User, error)

	// Flag sets isFlagged only if it is not set yet; false means it already was.
	Flag(ctx context.Context, id uint) (bool, error)
}

type ConfigRepository interface {
	GetGlobal(ctx context.Context) (*models.SystemConfig, error)
}
