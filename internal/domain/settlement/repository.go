package settlement

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Store reads settlement data and opens the transaction the aggregator runs in.
type Store interface {
	// WithinTx runs fn in one transaction; any error rolls everything back.
	WithinTx(ctx context.Context, fn func(tx TxStore) error) error

	ListEligible(ctx context.Context, cutoff string) ([]models.Booking, error)
	ListUnsettledCompleted(ctx context.Context, shopID *uint) ([]models.Booking, error)
	// TotalBarberNet sums barber net revenue over every completed booking of a shop.
	TotalBarberNet(ctx context.Context, shopID uint) (decimal.Decimal, error)

	ListSettlements(ctx context.Context, shopID *uint, limit int) ([]models.Settlement, error)
	GetSettlement(ctx context.Context, id uint) (*models.Settlement, error)

	// UpdateSettlementStatus sets status and appends note to the notes.
	UpdateSettlementStatus(ctx context.Context, id uint, status Status, note string) error
}

// TxStore is the transactional view handed to WithinTx callbacks.
type TxStore interface {
	// LockEligible reads and row-locks every completed, unsettled booking dated
	// before cutoff.
	LockEligible(ctx context.Context, cutoff string) ([]models.Booking, error)

	// LockUnsettledForShop does the same for one shop without a cutoff,
	// optionally restricted to bookingIDs.
	LockUnsettledForShop(ctx context.Context, shopID uint, bookingIDs []uint) ([]models.Booking, error)

	CreateSettlement(ctx context.Context, s *models.Settlement) error

	// MarkSettled flags the bookings SETTLED with the settlement reference and
	// returns how many rows changed.
	MarkSettled(ctx context.Context, bookingIDs []uint, settlementID uint) (int64, error)
}
