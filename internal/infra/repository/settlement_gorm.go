package repository

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SettlementGormRepository struct {
	db *gorm.DB
}

func NewSettlementGormRepository(db *gorm.DB) *SettlementGormRepository {
	return &SettlementGormRepository{db: db}
}

// WithinTx runs fn inside db.Transaction. Serialization failures and deadlocks
// come back marked with domain.ErrConflict.
func (r *SettlementGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.TxStore) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&settlementTx{db: tx})
	})
	if err != nil && IsSerializationFailure(err) {
		return cr.Mark(err, domain.ErrConflict)
	}
	return err
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *SettlementGormRepository) ListEligible(
	ctx context.Context,
	cutoff string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := eligible(r.db.WithContext(ctx), cutoff).Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "list eligible bookings")
	}
	return bookings, nil
}

func (r *SettlementGormRepository) ListUnsettledCompleted(
	ctx context.Context,
	shopID *uint,
) ([]models.Booking, error) {

	q := unsettled(r.db.WithContext(ctx))
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}

	var bookings []models.Booking
	if err := q.Order("shop_id ASC, date ASC").Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "list unsettled bookings")
	}
	return bookings, nil
}

func (r *SettlementGormRepository) TotalBarberNet(
	ctx context.Context,
	shopID uint,
) (decimal.Decimal, error) {

	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("SUM(barber_net_revenue)").
		Where("shop_id = ? AND status = ?", shopID, booking.StatusCompleted).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, cr.Wrap(err, "sum barber net")
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *SettlementGormRepository) ListSettlements(
	ctx context.Context,
	shopID *uint,
	limit int,
) ([]models.Settlement, error) {

	q := r.db.WithContext(ctx).Order("generated_at DESC, id DESC")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var settlements []models.Settlement
	if err := q.Find(&settlements).Error; err != nil {
		return nil, cr.Wrap(err, "list settlements")
	}
	return settlements, nil
}

func (r *SettlementGormRepository) GetSettlement(
	ctx context.Context,
	id uint,
) (*models.Settlement, error) {

	var s models.Settlement
	if err := r.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		First(&s, id).Error; err != nil {
		return nil, notFound(err, "settlement_not_found", "get settlement")
	}
	return &s, nil
}

func (r *SettlementGormRepository) UpdateSettlementStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
	note string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Settlement{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"notes":  gorm.Expr("CONCAT(COALESCE(notes, ''), ?::text)", "\n"+note),
		})
	if res.Error != nil {
		return cr.Wrap(res.Error, "update settlement status")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("settlement_not_found")
	}
	return nil
}

// --------------------------------------------------
// Transactional view
// --------------------------------------------------

type settlementTx struct {
	db *gorm.DB
}

func (t *settlementTx) LockEligible(
	ctx context.Context,
	cutoff string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := eligible(t.db.WithContext(ctx), cutoff).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "lock eligible bookings")
	}
	return bookings, nil
}

func (t *settlementTx) LockUnsettledForShop(
	ctx context.Context,
	shopID uint,
	bookingIDs []uint,
) ([]models.Booking, error) {

	q := unsettled(t.db.WithContext(ctx)).Where("shop_id = ?", shopID)
	if len(bookingIDs) > 0 {
		q = q.Where("id IN ?", bookingIDs)
	}

	var bookings []models.Booking
	if err := q.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("date ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, cr.Wrap(err, "lock shop bookings")
	}
	return bookings, nil
}

func (t *settlementTx) CreateSettlement(
	ctx context.Context,
	s *models.Settlement,
) error {
	// Bookings are linked by MarkSettled, not by association upsert.
	err := t.db.WithContext(ctx).Omit("Bookings").Create(s).Error
	return cr.Wrap(err, "create settlement")
}

func (t *settlementTx) MarkSettled(
	ctx context.Context,
	bookingIDs []uint,
	settlementID uint,
) (int64, error) {

	if len(bookingIDs) == 0 {
		return 0, nil
	}

	res := unsettled(t.db.WithContext(ctx).Model(&models.Booking{})).
		Where("id IN ?", bookingIDs).
		Updates(map[string]any{
			"settlement_status": booking.SettlementSettled,
			"settlement_id":     settlementID,
		})
	if res.Error != nil {
		return 0, cr.Wrap(res.Error, "mark bookings settled")
	}
	return res.RowsAffected, nil
}

// unsettled scopes to completed bookings no settlement has claimed yet.
func unsettled(db *gorm.DB) *gorm.DB {
	return db.
		Where("status = ?", booking.StatusCompleted).
		Where("(settlement_status = ? OR settlement_status IS NULL OR settlement_status = '')", booking.SettlementPending)
}

func eligible(db *gorm.DB, cutoff string) *gorm.DB {
	return unsettled(db).
		Where("date < ?", cutoff).
		Order("shop_id ASC, date ASC, id ASC")
}

// Compile-time checks
var (
	_ domain.Store   = (*SettlementGormRepository)(nil)
	_ domain.TxStore = (*settlementTx)(nil)
)
